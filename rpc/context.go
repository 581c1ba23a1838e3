package rpc

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	gogogrpc "github.com/cosmos/gogoproto/grpc"
)

// TxContext is the node facing half of the transaction path: everything
// Broadcast needs that is not signing.
type TxContext interface {
	ChainID() string
	TxConfig() client.TxConfig
	GetAccountNumberSequence(ctx context.Context, addr sdk.AccAddress) (accNum, seq uint64, err error)
	// SimulateGas returns the simulated gas already multiplied by the
	// factory's gas adjustment.
	SimulateGas(ctx context.Context, txf tx.Factory, msgs ...sdk.Msg) (uint64, error)
	BroadcastTxSync(ctx context.Context, txBytes []byte) (*sdk.TxResponse, error)
	QueryTx(ctx context.Context, hash string) (*sdk.TxResponse, error)
}

var _ TxContext = (*cosmosTxContext)(nil)

// cosmosTxContext implements TxContext over a cosmos client.Context. Queries
// go through conn so they can be metered.
type cosmosTxContext struct {
	clientCtx client.Context
	conn      gogogrpc.ClientConn
}

func newCosmosTxContext(clientCtx client.Context, conn gogogrpc.ClientConn) *cosmosTxContext {
	return &cosmosTxContext{clientCtx: clientCtx, conn: conn}
}

func (c *cosmosTxContext) ChainID() string { return c.clientCtx.ChainID }

func (c *cosmosTxContext) TxConfig() client.TxConfig { return c.clientCtx.TxConfig }

func (c *cosmosTxContext) GetAccountNumberSequence(ctx context.Context, addr sdk.AccAddress) (uint64, uint64, error) {
	res, err := authtypes.NewQueryClient(c.conn).Account(ctx, &authtypes.QueryAccountRequest{Address: addr.String()})
	if err != nil {
		return 0, 0, err
	}

	var acc authtypes.AccountI
	if err := c.clientCtx.InterfaceRegistry.UnpackAny(res.Account, &acc); err != nil {
		return 0, 0, err
	}
	return acc.GetAccountNumber(), acc.GetSequence(), nil
}

func (c *cosmosTxContext) SimulateGas(ctx context.Context, txf tx.Factory, msgs ...sdk.Msg) (uint64, error) {
	txBytes, err := txf.BuildSimTx(msgs...)
	if err != nil {
		return 0, err
	}

	res, err := txtypes.NewServiceClient(c.conn).Simulate(ctx, &txtypes.SimulateRequest{TxBytes: txBytes})
	if err != nil {
		return 0, err
	}
	return uint64(txf.GasAdjustment() * float64(res.GasInfo.GasUsed)), nil
}

// BroadcastTxSync returns once CheckTx has run; it does not wait for the
// transaction to be included in a block.
func (c *cosmosTxContext) BroadcastTxSync(ctx context.Context, txBytes []byte) (*sdk.TxResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.clientCtx.BroadcastTxSync(txBytes)
}

func (c *cosmosTxContext) QueryTx(ctx context.Context, hash string) (*sdk.TxResponse, error) {
	if _, err := hex.DecodeString(hash); err != nil {
		return nil, ErrNotFound.Wrapf("malformed tx hash %q", hash)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return authtx.QueryTx(c.clientCtx, strings.ToUpper(hash))
}
