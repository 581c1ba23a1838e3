package msgs

import errorsmod "cosmossdk.io/errors"

var (
	codespace = "msgs"

	ErrInvalidAmount  = errorsmod.Register(codespace, 2, "invalid amount")
	ErrInvalidDenom   = errorsmod.Register(codespace, 3, "invalid denom")
	ErrInvalidPayload = errorsmod.Register(codespace, 4, "invalid payload")
	ErrInvalidMessage = errorsmod.Register(codespace, 5, "invalid message")
)
