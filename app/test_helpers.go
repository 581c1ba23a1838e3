package app

import (
	"bytes"
	"testing"

	"github.com/cometbft/cometbft/libs/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/go-bip39"
	"github.com/stretchr/testify/require"

	"github.com/baron-chain/cwscripts/app/params"
	"github.com/baron-chain/cwscripts/contracts"
	"github.com/baron-chain/cwscripts/journal"
)

// UnreachableNode is a node address nothing listens on.
const UnreachableNode = "tcp://127.0.0.1:1"

// TestWallets are the wallets NewTestConfig derives, in seed order.
var TestWallets = []string{"homework", "validator", "wallet1"}

// NewTestConfig returns a configuration with deterministic wallets and
// contract addresses, pointed at UnreachableNode.
func NewTestConfig(t testing.TB) Config {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Node = UnreachableNode
	cfg.Gas = "200000"

	for i, name := range TestWallets {
		mnemonic, err := bip39.NewMnemonic(bytes.Repeat([]byte{byte(i + 1)}, 32))
		require.NoError(t, err)
		cfg.Wallets[name] = mnemonic
	}
	for i, name := range []string{contracts.Counter, contracts.CW20Token, contracts.Swap, contracts.Oracle} {
		cfg.Contracts[name] = TestContractAddress(t, byte(0x10+i))
	}
	return cfg
}

// TestContractAddress derives a 32 byte contract address from seed.
func TestContractAddress(t testing.TB, seed byte) string {
	t.Helper()
	addr, err := sdk.Bech32ifyAddressBytes(params.DefaultBech32Prefix, bytes.Repeat([]byte{seed}, 32))
	require.NoError(t, err)
	return addr
}

// Setup builds an App from NewTestConfig with an in-memory journal. The
// address prefixes must already be set, see params.SetAddressPrefixes.
func Setup(t testing.TB, opts ...Option) *App {
	t.Helper()
	return SetupWithConfig(t, NewTestConfig(t), opts...)
}

func SetupWithConfig(t testing.TB, cfg Config, opts ...Option) *App {
	t.Helper()

	opts = append([]Option{WithJournal(journal.NewMem())}, opts...)
	app, err := NewApp(log.NewNopLogger(), cfg, MakeEncodingConfig(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}
