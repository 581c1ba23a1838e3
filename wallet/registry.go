package wallet

import (
	"sort"
	"strings"

	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/go-bip39"
)

const mnemonicEntropySize = 256

// Registry maps wallet names to wallets derived from their mnemonics. It is
// populated once by NewRegistry and read-only afterwards.
type Registry struct {
	kr      keyring.Keyring
	wallets map[string]*Wallet
}

// NewRegistry derives one secp256k1 key per mnemonic on the path
// m/44'/<coin_type>'/0'/0/0 and stores it in an in-memory keyring. Names
// whose mnemonics derive the same address share one keyring record. cdc must
// have the crypto interfaces registered.
func NewRegistry(cdc codec.Codec, mnemonics map[string]string, opts ...Option) (*Registry, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.prefix == "" {
		return nil, ErrInvalidOptions.Wrap("bech32 prefix is empty")
	}

	r := &Registry{
		kr:      keyring.NewInMemory(cdc),
		wallets: make(map[string]*Wallet, len(mnemonics)),
	}

	hdPath := hd.CreateHDPath(cfg.coinType, 0, 0).String()
	keyNames := make(map[string]string, len(mnemonics))
	for _, name := range sortedKeys(mnemonics) {
		mnemonic := normalize(mnemonics[name])
		if name == "" {
			return nil, ErrKeyDerivation.Wrap("wallet name is empty")
		}
		if !bip39.IsMnemonicValid(mnemonic) {
			return nil, ErrKeyDerivation.Wrapf("wallet %q: malformed mnemonic", name)
		}

		addr, err := deriveAddress(mnemonic, hdPath)
		if err != nil {
			return nil, ErrKeyDerivation.Wrapf("wallet %q: %s", name, err)
		}
		bech32, err := sdk.Bech32ifyAddressBytes(cfg.prefix, addr)
		if err != nil {
			return nil, ErrKeyDerivation.Wrapf("wallet %q: %s", name, err)
		}

		// the keyring holds one record per address; aliases share it
		keyName, ok := keyNames[bech32]
		if !ok {
			if _, err := r.kr.NewAccount(name, mnemonic, keyring.DefaultBIP39Passphrase, hdPath, hd.Secp256k1); err != nil {
				return nil, ErrKeyDerivation.Wrapf("wallet %q: %s", name, err)
			}
			keyName = name
			keyNames[bech32] = name
		}

		r.wallets[name] = &Wallet{name: name, keyName: keyName, address: addr, bech32: bech32, kr: r.kr}
		cfg.logger.Debug("derived wallet", "name", name, "key", keyName, "address", bech32, "path", hdPath)
	}

	return r, nil
}

// Resolve returns the wallet registered under name.
func (r *Registry) Resolve(name string) (*Wallet, error) {
	w, ok := r.wallets[name]
	if !ok {
		return nil, ErrUnknownWallet.Wrapf("%q", name)
	}
	return w, nil
}

// Lookup finds the wallet owning the bech32 address addr. When several
// names share the address, the first in lexical order wins.
func (r *Registry) Lookup(addr string) (*Wallet, bool) {
	for _, name := range r.Names() {
		if w := r.wallets[name]; w.bech32 == addr {
			return w, true
		}
	}
	return nil, false
}

// Names returns the registered wallet names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.wallets))
	for name := range r.wallets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Keyring() keyring.Keyring { return r.kr }

// NewMnemonic returns a fresh 24 word BIP-39 mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropySize)
	if err != nil {
		return "", ErrKeyDerivation.Wrapf("entropy: %s", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", ErrKeyDerivation.Wrap(err.Error())
	}
	return mnemonic, nil
}

func deriveAddress(mnemonic, hdPath string) (sdk.AccAddress, error) {
	bz, err := hd.Secp256k1.Derive()(mnemonic, keyring.DefaultBIP39Passphrase, hdPath)
	if err != nil {
		return nil, err
	}
	return sdk.AccAddress(hd.Secp256k1.Generate()(bz).PubKey().Address()), nil
}

// normalize collapses the whitespace that creeps in from YAML block scalars.
func normalize(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
