package scripts

import (
	"context"
	"encoding/json"

	"cosmossdk.io/math"
	"github.com/cometbft/cometbft/libs/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/baron-chain/cwscripts/app/params"
	"github.com/baron-chain/cwscripts/contracts"
	"github.com/baron-chain/cwscripts/journal"
	"github.com/baron-chain/cwscripts/msgs"
	"github.com/baron-chain/cwscripts/rpc"
	"github.com/baron-chain/cwscripts/wallet"
)

// Wallets the scripts sign with unless told otherwise.
const (
	Homework  = "homework"
	Validator = "validator"
)

// Defaults of the individual scripts.
const (
	DefaultMintAmount = 1_000_000_000
	DefaultPrice      = 102
	DefaultSwapAmount = 1_000_000
)

// Client is the ledger access the scripts need.
type Client interface {
	Query(ctx context.Context, contract string, payload json.RawMessage) (json.RawMessage, error)
	Execute(
		ctx context.Context,
		signer rpc.Signer,
		contract string,
		payload msgs.Payload,
		funds ...sdk.Coin,
	) (*rpc.TransactionResult, error)
}

// Recorder keeps receipts of broadcast transactions.
type Recorder interface {
	Record(wallet, contract, action string, res *rpc.TransactionResult) (*journal.Receipt, error)
}

// Scripts runs the counter, cw20, swap and oracle scripts against the
// registered contracts.
type Scripts struct {
	wallets   *wallet.Registry
	contracts *contracts.Registry
	client    Client
	recorder  Recorder
	logger    log.Logger
}

func New(wallets *wallet.Registry, contractRegistry *contracts.Registry, client Client, opts ...Option) *Scripts {
	s := &Scripts{
		wallets:   wallets,
		contracts: contractRegistry,
		client:    client,
		logger:    log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCount queries the counter contract.
func (s *Scripts) GetCount(ctx context.Context) (json.RawMessage, error) {
	return s.query(ctx, contracts.Counter, msgs.GetCount{})
}

// Increment bumps the counter, signed by validator by default.
func (s *Scripts) Increment(ctx context.Context, opts ...CallOption) (*rpc.TransactionResult, error) {
	return s.execute(ctx, contracts.Counter, msgs.Increment{}, newCall(Validator, nil, opts))
}

// Reset sets the counter to count. Only the counter's owner may do so.
func (s *Scripts) Reset(ctx context.Context, count int32, opts ...CallOption) (*rpc.TransactionResult, error) {
	return s.execute(ctx, contracts.Counter, msgs.Reset{Count: count}, newCall(Validator, nil, opts))
}

// Mint mints amount cw20 tokens to recipient, a wallet name, contract name
// or raw address. An empty recipient mints to the swap contract and a nil
// amount mints DefaultMintAmount.
func (s *Scripts) Mint(ctx context.Context, recipient string, amount math.Int, opts ...CallOption) (*rpc.TransactionResult, error) {
	if recipient == "" {
		recipient = contracts.Swap
	}
	if amount.IsNil() {
		amount = math.NewInt(DefaultMintAmount)
	}
	if !amount.IsPositive() {
		return nil, msgs.ErrInvalidAmount.Wrapf("mint amount must be positive, got %s", amount)
	}

	addr, err := s.resolveAccount(recipient)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, contracts.CW20Token, msgs.Mint{Recipient: addr, Amount: amount}, newCall(Homework, nil, opts))
}

// Transfer sends amount cw20 tokens from the signer to recipient.
func (s *Scripts) Transfer(ctx context.Context, recipient string, amount math.Int, opts ...CallOption) (*rpc.TransactionResult, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return nil, msgs.ErrInvalidAmount.Wrap("transfer amount must be positive")
	}
	addr, err := s.resolveAccount(recipient)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, contracts.CW20Token, msgs.Transfer{Recipient: addr, Amount: amount}, newCall(Homework, nil, opts))
}

// Balance queries the cw20 balance of address, the swap contract when empty.
func (s *Scripts) Balance(ctx context.Context, address string) (json.RawMessage, error) {
	if address == "" {
		address = contracts.Swap
	}
	addr, err := s.resolveAccount(address)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, contracts.CW20Token, msgs.Balance{Address: addr})
}

func (s *Scripts) TokenInfo(ctx context.Context) (json.RawMessage, error) {
	return s.query(ctx, contracts.CW20Token, msgs.TokenInfo{})
}

// Swap buys tokens from the swap contract, paying DefaultSwapAmount uluna
// unless WithFunds says otherwise. Signed by homework by default.
func (s *Scripts) Swap(ctx context.Context, opts ...CallOption) (*rpc.TransactionResult, error) {
	funds := sdk.NewCoins(sdk.NewInt64Coin(params.DefaultDenom, DefaultSwapAmount))
	return s.execute(ctx, contracts.Swap, msgs.Buy{}, newCall(Homework, funds, opts))
}

// Buy is Swap.
func (s *Scripts) Buy(ctx context.Context, opts ...CallOption) (*rpc.TransactionResult, error) {
	return s.Swap(ctx, opts...)
}

// Withdraw withdraws amount from the swap contract.
func (s *Scripts) Withdraw(ctx context.Context, amount int32, opts ...CallOption) (*rpc.TransactionResult, error) {
	if amount <= 0 {
		return nil, msgs.ErrInvalidAmount.Wrapf("withdraw amount must be positive, got %d", amount)
	}
	return s.execute(ctx, contracts.Swap, msgs.Withdraw{Amount: amount}, newCall(Homework, nil, opts))
}

// GetPrice queries the oracle.
func (s *Scripts) GetPrice(ctx context.Context) (json.RawMessage, error) {
	return s.query(ctx, contracts.Oracle, msgs.QueryPrice{})
}

// UpdatePrice sets the oracle price, signed by homework by default.
func (s *Scripts) UpdatePrice(ctx context.Context, price uint64, opts ...CallOption) (*rpc.TransactionResult, error) {
	return s.execute(ctx, contracts.Oracle, msgs.UpdatePrice{Price: price}, newCall(Homework, nil, opts))
}

// Query runs an arbitrary smart query against a registered contract or a raw
// contract address.
func (s *Scripts) Query(ctx context.Context, contract string, payload json.RawMessage) (json.RawMessage, error) {
	addr, err := s.contracts.Target(contract)
	if err != nil {
		return nil, err
	}
	return s.client.Query(ctx, addr, payload)
}

// Execute sends {action: payload} to contract, signed by homework by default.
func (s *Scripts) Execute(
	ctx context.Context,
	contract, action string,
	payload json.RawMessage,
	opts ...CallOption,
) (*rpc.TransactionResult, error) {
	return s.execute(ctx, contract, msgs.Raw{Tag: action, Body: payload}, newCall(Homework, nil, opts))
}

func (s *Scripts) query(ctx context.Context, contract string, p msgs.Payload) (json.RawMessage, error) {
	body, err := msgs.Query(p)
	if err != nil {
		return nil, err
	}
	return s.Query(ctx, contract, body)
}

func (s *Scripts) execute(ctx context.Context, contract string, p msgs.Payload, c call) (*rpc.TransactionResult, error) {
	signer, err := s.wallets.Resolve(c.signer)
	if err != nil {
		return nil, err
	}
	addr, err := s.contracts.Target(contract)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Execute(ctx, signer, addr, p, c.funds...)
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		if _, err := s.recorder.Record(signer.Name(), contract, p.Action(), res); err != nil {
			// the transaction is already on its way; report it anyway
			s.logger.Error("failed to record receipt", "hash", res.TxHash, "err", err)
		}
	}
	return res, nil
}

// resolveAccount turns a wallet name, contract name or raw address into an
// address.
func (s *Scripts) resolveAccount(ref string) (string, error) {
	if w, err := s.wallets.Resolve(ref); err == nil {
		return w.Address(), nil
	}
	if addr, err := s.contracts.Target(ref); err == nil {
		return addr, nil
	}
	if _, err := sdk.AccAddressFromBech32(ref); err == nil {
		return ref, nil
	}
	return "", contracts.ErrUnknownContract.Wrapf("%q is not a wallet, a registered contract or an address", ref)
}
