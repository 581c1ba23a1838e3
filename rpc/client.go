package rpc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/tx/signing"
	"google.golang.org/grpc"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"

	"github.com/baron-chain/cwscripts/app/params"
	"github.com/baron-chain/cwscripts/msgs"
)

// Signer is a named key in a keyring together with its bech32 address.
// Name identifies the signer in logs, KeyName selects the keyring record.
type Signer interface {
	Name() string
	KeyName() string
	Address() string
	Keyring() keyring.Keyring
}

// ContractQuerier is the part of the wasm query service the client uses.
type ContractQuerier interface {
	SmartContractState(
		ctx context.Context,
		in *wasmtypes.QuerySmartContractStateRequest,
		opts ...grpc.CallOption,
	) (*wasmtypes.QuerySmartContractStateResponse, error)
}

// Client queries and executes CosmWasm contracts on one chain.
type Client struct {
	logger  log.Logger
	cfg     config
	txCtx   TxContext
	querier ContractQuerier
	metrics *metrics
}

// NewClient builds a client on top of clientCtx. clientCtx must carry the
// codec, interface registry, tx config and chain id; the node client is only
// needed when no TxContext or ContractQuerier is supplied.
func NewClient(clientCtx client.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	c := &Client{
		logger:  cfg.logger.With("module", "rpc"),
		cfg:     cfg,
		txCtx:   cfg.txCtx,
		querier: cfg.querier,
	}

	if cfg.registerer != nil {
		m, err := newMetrics(cfg.registerer)
		if err != nil {
			return nil, ErrInvalidConfig.Wrapf("metrics: %s", err)
		}
		c.metrics = m
	}

	conn := newMeteredConn(clientCtx, c.metrics)
	if c.txCtx == nil {
		c.txCtx = newCosmosTxContext(clientCtx, conn)
	}
	if c.querier == nil {
		c.querier = wasmtypes.NewQueryClient(conn)
	}
	return c, nil
}

// Query runs a smart query against contract and returns the contract's
// answer exactly as the node returned it. Nothing is signed.
func (c *Client) Query(ctx context.Context, contract string, payload json.RawMessage) (json.RawMessage, error) {
	data, err := c.query(ctx, contract, payload)
	if err != nil {
		c.metrics.observe("query", outcomeError)
		return nil, err
	}
	c.metrics.observe("query", outcomeSuccess)
	return data, nil
}

func (c *Client) query(ctx context.Context, contract string, payload json.RawMessage) (json.RawMessage, error) {
	if !json.Valid(payload) {
		return nil, ErrContractQuery.Wrapf("query payload is not valid JSON: %s", payload)
	}
	if _, err := sdk.AccAddressFromBech32(contract); err != nil {
		return nil, ErrContractQuery.Wrapf("contract address %q: %s", contract, err)
	}

	c.logger.Debug("smart query", "contract", contract, "payload", string(payload))
	res, err := c.querier.SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
		Address:   contract,
		QueryData: wasmtypes.RawContractMessage(payload),
	})
	if err != nil {
		return nil, classifyQueryError(err, contract)
	}
	return json.RawMessage(res.Data), nil
}

// Execute builds an execute message for contract from payload and funds and
// broadcasts it signed by signer.
func (c *Client) Execute(
	ctx context.Context,
	signer Signer,
	contract string,
	payload msgs.Payload,
	funds ...sdk.Coin,
) (*TransactionResult, error) {
	if _, err := signer.Keyring().Key(signer.KeyName()); err != nil {
		return nil, ErrSigning.Wrapf("key %q: %s", signer.KeyName(), err)
	}

	msg, err := msgs.Execute(signer.Address(), contract, payload, funds...)
	if err != nil {
		return nil, err
	}
	return c.Broadcast(ctx, signer, msg.ToMsg())
}

// Broadcast signs sdkMsgs with signer and submits them in one transaction.
// It returns after CheckTx; the result says whether the node accepted it.
func (c *Client) Broadcast(ctx context.Context, signer Signer, sdkMsgs ...sdk.Msg) (*TransactionResult, error) {
	res, err := c.broadcast(ctx, signer, sdkMsgs...)
	c.metrics.observeResult("execute", res, err)
	return res, err
}

func (c *Client) broadcast(ctx context.Context, signer Signer, sdkMsgs ...sdk.Msg) (*TransactionResult, error) {
	if len(sdkMsgs) == 0 {
		return nil, msgs.ErrInvalidMessage.Wrap("no messages to broadcast")
	}
	for _, msg := range sdkMsgs {
		if err := msg.ValidateBasic(); err != nil {
			return nil, msgs.ErrInvalidMessage.Wrap(err.Error())
		}
	}

	record, err := signer.Keyring().Key(signer.KeyName())
	if err != nil {
		return nil, ErrSigning.Wrapf("key %q: %s", signer.KeyName(), err)
	}
	addr, err := record.GetAddress()
	if err != nil {
		return nil, ErrSigning.Wrapf("key %q: %s", signer.KeyName(), err)
	}

	accNum, seq, err := c.txCtx.GetAccountNumberSequence(ctx, addr)
	switch {
	case err == nil:
	case isNetworkError(err):
		return nil, ErrBroadcast.Wrapf("account lookup: %s", err)
	case isNotFoundError(err):
		return nil, ErrInsufficientFunds.Wrapf("account %s does not exist on chain", signer.Address())
	default:
		return nil, ErrBroadcast.Wrapf("account lookup: %s", err)
	}

	txf := c.factory(signer, accNum, seq)
	if c.cfg.gas.Simulate {
		gas, err := c.txCtx.SimulateGas(ctx, txf, sdkMsgs...)
		switch {
		case err == nil:
			txf = txf.WithGas(gas)
		case isNetworkError(err):
			return nil, ErrBroadcast.Wrapf("simulate: %s", err)
		case isInsufficientFunds(err.Error()):
			return nil, ErrInsufficientFunds.Wrapf("simulate: %s", err)
		default:
			c.logger.Info("simulation rejected transaction", "signer", signer.Name(), "err", err)
			return rejected(err.Error()), nil
		}
	}

	txBytes, err := c.sign(txf, signer, sdkMsgs...)
	if err != nil {
		return nil, err
	}

	res, err := c.txCtx.BroadcastTxSync(ctx, txBytes)
	if err != nil {
		return nil, ErrBroadcast.Wrap(err.Error())
	}
	if isInsufficientFundsCode(res) {
		return nil, ErrInsufficientFunds.Wrapf("tx %s: %s", res.TxHash, res.RawLog)
	}

	c.logger.Info("broadcast transaction",
		"signer", signer.Name(),
		"hash", res.TxHash,
		"code", res.Code,
		"gas_wanted", txf.Gas(),
	)
	return NewTransactionResult(res), nil
}

func (c *Client) factory(signer Signer, accNum, seq uint64) tx.Factory {
	txf := tx.Factory{}.
		WithChainID(c.txCtx.ChainID()).
		WithTxConfig(c.txCtx.TxConfig()).
		WithKeybase(signer.Keyring()).
		WithAccountNumber(accNum).
		WithSequence(seq).
		WithGas(c.cfg.gas.Gas).
		WithGasAdjustment(c.cfg.gasAdjustment).
		WithSimulateAndExecute(c.cfg.gas.Simulate).
		WithMemo(c.cfg.memo).
		WithSignMode(signing.SignMode_SIGN_MODE_DIRECT)

	// both values were validated by their options
	switch {
	case c.cfg.fees != "":
		txf = txf.WithFees(c.cfg.fees)
	case c.cfg.gasPrices != "":
		txf = txf.WithGasPrices(c.cfg.gasPrices)
	}
	return txf
}

func (c *Client) sign(txf tx.Factory, signer Signer, sdkMsgs ...sdk.Msg) ([]byte, error) {
	builder, err := txf.BuildUnsignedTx(sdkMsgs...)
	if err != nil {
		return nil, ErrSigning.Wrapf("build tx: %s", err)
	}
	if err := tx.Sign(txf, signer.KeyName(), builder, true); err != nil {
		return nil, ErrSigning.Wrap(err.Error())
	}

	txBytes, err := c.txCtx.TxConfig().TxEncoder()(builder.GetTx())
	if err != nil {
		return nil, ErrSigning.Wrapf("encode tx: %s", err)
	}
	return txBytes, nil
}

// AwaitTx polls for the committed result of hash every interval until it is
// found or ctx is done.
func (c *Client) AwaitTx(ctx context.Context, hash string, interval time.Duration) (*TransactionResult, error) {
	if interval <= 0 {
		interval = params.DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := c.txCtx.QueryTx(ctx, hash)
		if err == nil {
			c.metrics.observeResult("await", NewTransactionResult(res), nil)
			return NewTransactionResult(res), nil
		}
		c.logger.Debug("transaction not committed yet", "hash", hash, "err", err)

		select {
		case <-ctx.Done():
			c.metrics.observe("await", outcomeError)
			return nil, ErrTxNotCommitted.Wrapf("%s: %s", hash, err)
		case <-ticker.C:
		}
	}
}

func isInsufficientFundsCode(res *sdk.TxResponse) bool {
	if res.Codespace != sdkerrors.RootCodespace {
		return false
	}
	return res.Code == sdkerrors.ErrInsufficientFunds.ABCICode() ||
		res.Code == sdkerrors.ErrInsufficientFee.ABCICode()
}
