package rpc

import errorsmod "cosmossdk.io/errors"

var (
	codespace = "rpc"

	ErrSigning           = errorsmod.Register(codespace, 2, "signing failed")
	ErrInsufficientFunds = errorsmod.Register(codespace, 3, "insufficient funds")
	ErrNetwork           = errorsmod.Register(codespace, 4, "network error")
	ErrBroadcast         = errorsmod.Register(codespace, 5, "broadcast failed")
	ErrContractQuery     = errorsmod.Register(codespace, 6, "contract query failed")
	ErrNotFound          = errorsmod.Register(codespace, 7, "not found")
	ErrTxNotCommitted    = errorsmod.Register(codespace, 8, "transaction not committed")
	ErrInvalidConfig     = errorsmod.Register(codespace, 9, "invalid client configuration")
)
