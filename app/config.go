package app

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/baron-chain/cwscripts/app/params"
)

// AppOptions is the read side of viper.
type AppOptions interface {
	Get(string) interface{}
}

// Config is the cwscripts configuration file.
type Config struct {
	ChainID       string  `mapstructure:"chain_id"`
	Node          string  `mapstructure:"node"`
	GRPC          string  `mapstructure:"grpc"`
	Bech32Prefix  string  `mapstructure:"bech32_prefix"`
	CoinType      uint32  `mapstructure:"coin_type"`
	Gas           string  `mapstructure:"gas"`
	GasAdjustment float64 `mapstructure:"gas_adjustment"`
	GasPrices     string  `mapstructure:"gas_prices"`
	Fees          string  `mapstructure:"fees"`
	Memo          string  `mapstructure:"memo"`

	// Wallets maps wallet names to mnemonics.
	Wallets map[string]string `mapstructure:"wallets"`
	// Contracts maps contract names to addresses. Entries here win over the
	// refs file.
	Contracts map[string]string `mapstructure:"contracts"`
	RefsFile  string            `mapstructure:"refs_file"`
	Network   string            `mapstructure:"network"`

	JournalDir string          `mapstructure:"journal_dir"`
	Telemetry  TelemetryConfig `mapstructure:"telemetry"`
}

type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Textfile is where metrics are written on exit, for the node exporter's
	// textfile collector.
	Textfile string `mapstructure:"textfile"`
}

func DefaultConfig() Config {
	return Config{
		ChainID:       params.DefaultChainID,
		Node:          params.DefaultNode,
		Bech32Prefix:  params.DefaultBech32Prefix,
		CoinType:      params.DefaultCoinType,
		Gas:           params.DefaultGas,
		GasAdjustment: params.DefaultGasAdjustment,
		GasPrices:     params.DefaultGasPrices,
		Network:       params.DefaultChainID,
		Wallets:       map[string]string{},
		Contracts:     map[string]string{},
	}
}

// ReadConfig reads the configuration from opts, keeping the default for
// every key that is not set.
func ReadConfig(opts AppOptions) (Config, error) {
	cfg := DefaultConfig()

	readString(opts, "chain_id", &cfg.ChainID)
	readString(opts, "node", &cfg.Node)
	readString(opts, "grpc", &cfg.GRPC)
	readString(opts, "bech32_prefix", &cfg.Bech32Prefix)
	readString(opts, "gas", &cfg.Gas)
	readString(opts, "gas_prices", &cfg.GasPrices)
	readString(opts, "fees", &cfg.Fees)
	readString(opts, "memo", &cfg.Memo)
	readString(opts, "refs_file", &cfg.RefsFile)
	readString(opts, "network", &cfg.Network)
	readString(opts, "journal_dir", &cfg.JournalDir)
	readString(opts, "telemetry.textfile", &cfg.Telemetry.Textfile)

	if v := opts.Get("coin_type"); v != nil {
		coinType, err := cast.ToUint32E(v)
		if err != nil {
			return cfg, errors.Wrap(err, "coin_type")
		}
		cfg.CoinType = coinType
	}
	if v := opts.Get("gas_adjustment"); v != nil {
		adjustment, err := cast.ToFloat64E(v)
		if err != nil {
			return cfg, errors.Wrap(err, "gas_adjustment")
		}
		cfg.GasAdjustment = adjustment
	}
	if v := opts.Get("telemetry.enabled"); v != nil {
		cfg.Telemetry.Enabled = cast.ToBool(v)
	}

	// a fixed fee replaces the default gas price
	if cfg.Fees != "" && cast.ToString(opts.Get("gas_prices")) == "" {
		cfg.GasPrices = ""
	}

	var err error
	if cfg.Wallets, err = readStringMap(opts, "wallets"); err != nil {
		return cfg, err
	}
	if cfg.Contracts, err = readStringMap(opts, "contracts"); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.ChainID == "" {
		return errors.New("chain_id must be set")
	}
	if c.Node == "" && c.GRPC == "" {
		return errors.New("one of node or grpc must be set")
	}
	if c.Bech32Prefix == "" {
		return errors.New("bech32_prefix must be set")
	}
	if c.GasAdjustment <= 0 {
		return errors.Errorf("gas_adjustment must be positive, got %v", c.GasAdjustment)
	}
	if c.GasPrices != "" && c.Fees != "" {
		return errors.New("gas_prices and fees are mutually exclusive")
	}
	if c.GasPrices != "" {
		if _, err := sdk.ParseDecCoins(c.GasPrices); err != nil {
			return errors.Wrap(err, "gas_prices")
		}
	}
	if c.Fees != "" {
		if _, err := sdk.ParseCoinsNormalized(c.Fees); err != nil {
			return errors.Wrap(err, "fees")
		}
	}
	if c.RefsFile != "" && c.Network == "" {
		return errors.New("network must be set to read refs_file")
	}
	return nil
}

// readString leaves dst alone when key is unset or empty; unchanged string
// flags report "" through viper.
func readString(opts AppOptions, key string, dst *string) {
	if v := opts.Get(key); v != nil {
		if s := strings.TrimSpace(cast.ToString(v)); s != "" {
			*dst = s
		}
	}
}

func readStringMap(opts AppOptions, key string) (map[string]string, error) {
	v := opts.Get(key)
	if v == nil {
		return map[string]string{}, nil
	}
	m, err := cast.ToStringMapStringE(v)
	if err != nil {
		return nil, errors.Wrap(err, key)
	}
	return m, nil
}
