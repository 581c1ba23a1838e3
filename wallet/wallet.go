package wallet

import (
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Wallet is a named signing identity. Its key lives in the registry's
// keyring under KeyName; the wallet itself only carries the derived address.
type Wallet struct {
	name    string
	keyName string
	address sdk.AccAddress
	bech32  string
	kr      keyring.Keyring
}

func (w *Wallet) Name() string { return w.name }

// KeyName is the keyring record holding the private key. It differs from
// Name when another wallet with the same mnemonic was registered first.
func (w *Wallet) KeyName() string { return w.keyName }

// Address returns the bech32 account address.
func (w *Wallet) Address() string { return w.bech32 }

// AccAddress returns the raw account address bytes.
func (w *Wallet) AccAddress() sdk.AccAddress { return w.address }

// Keyring returns the keyring holding the wallet's private key.
func (w *Wallet) Keyring() keyring.Keyring { return w.kr }

func (w *Wallet) String() string {
	return w.name + " (" + w.bech32 + ")"
}
