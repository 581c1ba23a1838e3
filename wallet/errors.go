package wallet

import errorsmod "cosmossdk.io/errors"

var (
	codespace = "wallet"

	ErrUnknownWallet  = errorsmod.Register(codespace, 2, "unknown wallet")
	ErrKeyDerivation  = errorsmod.Register(codespace, 3, "key derivation failed")
	ErrInvalidOptions = errorsmod.Register(codespace, 4, "invalid wallet registry options")
)
