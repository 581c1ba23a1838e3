package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/cometbft/cometbft/libs/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baron-chain/cwscripts/app/params"
	"github.com/baron-chain/cwscripts/contracts"
	"github.com/baron-chain/cwscripts/journal"
	"github.com/baron-chain/cwscripts/rpc"
	"github.com/baron-chain/cwscripts/wallet"
)

func TestMain(m *testing.M) {
	params.SetAddressPrefixes(params.DefaultBech32Prefix)
	os.Exit(m.Run())
}

func TestNewApp(t *testing.T) {
	app := Setup(t)

	assert.Equal(t, TestWallets, app.Wallets.Names())
	assert.Equal(t, []string{contracts.Counter, contracts.CW20Token, contracts.Oracle, contracts.Swap}, app.Contracts.Names())
	assert.NotNil(t, app.Journal)
	assert.Nil(t, app.Gatherer())
	assert.Equal(t, params.DefaultChainID, app.ClientContext().ChainID)
}

func TestMintAgainstUnreachableNode(t *testing.T) {
	app := Setup(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := app.Scripts.Mint(ctx, "", math.NewInt(1_000_000_000))
	require.ErrorIs(t, err, rpc.ErrBroadcast)
	assert.Nil(t, res)

	_, err = app.Scripts.GetPrice(ctx)
	require.ErrorIs(t, err, rpc.ErrNetwork)

	// nothing reached the ledger, nothing was recorded
	receipts, err := app.Journal.List(0)
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestNewAppErrors(t *testing.T) {
	specs := map[string]struct {
		mutate func(*Config)
		expErr error
	}{
		"malformed mnemonic": {
			mutate: func(c *Config) { c.Wallets["homework"] = "one two three" },
			expErr: wallet.ErrKeyDerivation,
		},
		"bad contract address": {
			mutate: func(c *Config) { c.Contracts[contracts.Oracle] = "terra1notanaddress" },
			expErr: contracts.ErrInvalidAddress,
		},
		"missing refs network": {
			mutate: func(c *Config) {
				path := filepath.Join(t.TempDir(), "refs.terrain.json")
				require.NoError(t, os.WriteFile(path, []byte(`{"testnet":{}}`), 0o600))
				c.RefsFile = path
			},
			expErr: contracts.ErrInvalidRefs,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			cfg := NewTestConfig(t)
			spec.mutate(&cfg)
			_, err := NewApp(log.NewNopLogger(), cfg, MakeEncodingConfig())
			require.ErrorIs(t, err, spec.expErr)
		})
	}
}

func TestRefsFileMergesUnderConfig(t *testing.T) {
	fromRefs := TestContractAddress(t, 0x31)
	overridden := TestContractAddress(t, 0x32)
	refs := map[string]any{
		"localterra": map[string]any{
			"lottery": map[string]any{"codeId": "9", "contractAddresses": map[string]string{"default": fromRefs}},
			"counter": map[string]any{"codeId": "1", "contractAddresses": map[string]string{"default": overridden}},
		},
	}
	bz, err := json.Marshal(refs)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "refs.terrain.json")
	require.NoError(t, os.WriteFile(path, bz, 0o600))

	cfg := NewTestConfig(t)
	cfg.RefsFile = path
	app := SetupWithConfig(t, cfg)

	addr, err := app.Contracts.Resolve("lottery")
	require.NoError(t, err)
	assert.Equal(t, fromRefs, addr)

	addr, err = app.Contracts.Resolve(contracts.Counter)
	require.NoError(t, err)
	assert.Equal(t, cfg.Contracts[contracts.Counter], addr)
}

func TestTelemetryTextfile(t *testing.T) {
	cfg := NewTestConfig(t)
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Textfile = filepath.Join(t.TempDir(), "cwscripts.prom")

	app, err := NewApp(log.NewNopLogger(), cfg, MakeEncodingConfig(), WithJournal(journal.NewMem()))
	require.NoError(t, err)
	require.NotNil(t, app.Gatherer())

	_, err = app.Scripts.GetCount(context.Background())
	require.ErrorIs(t, err, rpc.ErrNetwork)
	require.NoError(t, app.Close())

	bz, err := os.ReadFile(cfg.Telemetry.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(bz), `cwscripts_rpc_requests_total{operation="query",outcome="error"} 1`)
	assert.Contains(t, string(bz), "cwscripts_rpc_grpc_call_duration_seconds")
}

func TestReadConfig(t *testing.T) {
	v := viper.New()
	v.Set("chain_id", "pisco-1")
	v.Set("node", "https://terra-testnet-rpc.polkachu.com:443")
	v.Set("coin_type", "330")
	v.Set("gas_adjustment", "1.8")
	v.Set("fees", "5000uluna")
	v.Set("gas_prices", "")
	v.Set("telemetry.enabled", true)
	v.Set("wallets", map[string]any{"homework": "word word"})
	v.Set("contracts", map[string]any{"oracle": "terra1abc"})

	cfg, err := ReadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "pisco-1", cfg.ChainID)
	assert.Equal(t, "https://terra-testnet-rpc.polkachu.com:443", cfg.Node)
	assert.Equal(t, uint32(330), cfg.CoinType)
	assert.Equal(t, 1.8, cfg.GasAdjustment)
	assert.Equal(t, "5000uluna", cfg.Fees)
	assert.Empty(t, cfg.GasPrices)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, map[string]string{"homework": "word word"}, cfg.Wallets)
	assert.Equal(t, map[string]string{"oracle": "terra1abc"}, cfg.Contracts)

	// defaults survive an empty source
	cfg, err = ReadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigValidate(t *testing.T) {
	specs := map[string]func(*Config){
		"no chain id":          func(c *Config) { c.ChainID = "" },
		"no endpoint":          func(c *Config) { c.Node, c.GRPC = "", "" },
		"no prefix":            func(c *Config) { c.Bech32Prefix = "" },
		"zero adjustment":      func(c *Config) { c.GasAdjustment = 0 },
		"fees and gas prices":  func(c *Config) { c.Fees = "1uluna" },
		"bad gas prices":       func(c *Config) { c.GasPrices = "free" },
		"bad fees":             func(c *Config) { c.GasPrices, c.Fees = "", "1.5.5uluna" },
		"refs without network": func(c *Config) { c.RefsFile, c.Network = "refs.json", "" },
	}
	for name, mutate := range specs {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, DefaultConfig().Validate())
}
