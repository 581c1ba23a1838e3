package contracts

import errorsmod "cosmossdk.io/errors"

var (
	codespace = "contracts"

	ErrUnknownContract = errorsmod.Register(codespace, 2, "unknown contract")
	ErrInvalidAddress  = errorsmod.Register(codespace, 3, "invalid contract address")
	ErrInvalidRefs     = errorsmod.Register(codespace, 4, "invalid refs file")
)
