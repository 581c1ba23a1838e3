package rpc

import (
	"github.com/cometbft/cometbft/libs/log"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/baron-chain/cwscripts/app/params"
)

type config struct {
	logger        log.Logger
	gas           flags.GasSetting
	gasAdjustment float64
	gasPrices     string
	fees          string
	memo          string
	txCtx         TxContext
	querier       ContractQuerier
	registerer    prometheus.Registerer
}

// Option configures a Client.
type Option func(*config) error

func defaultConfig() config {
	gas, _ := flags.ParseGasSetting(params.DefaultGas)
	return config{
		logger:        log.NewNopLogger(),
		gas:           gas,
		gasAdjustment: params.DefaultGasAdjustment,
		gasPrices:     params.DefaultGasPrices,
	}
}

func WithLogger(logger log.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithGas accepts a fixed gas limit or "auto" to simulate first.
func WithGas(gas string) Option {
	return func(c *config) error {
		setting, err := flags.ParseGasSetting(gas)
		if err != nil {
			return ErrInvalidConfig.Wrapf("gas %q: %s", gas, err)
		}
		c.gas = setting
		return nil
	}
}

// WithGasAdjustment sets the multiplier applied to simulated gas.
func WithGasAdjustment(adjustment float64) Option {
	return func(c *config) error {
		if adjustment <= 0 {
			return ErrInvalidConfig.Wrapf("gas adjustment must be positive, got %v", adjustment)
		}
		c.gasAdjustment = adjustment
		return nil
	}
}

// WithGasPrices sets the price per unit of gas, e.g. "0.15uluna". It replaces
// any fixed fee.
func WithGasPrices(prices string) Option {
	return func(c *config) error {
		if _, err := sdk.ParseDecCoins(prices); err != nil {
			return ErrInvalidConfig.Wrapf("gas prices %q: %s", prices, err)
		}
		c.gasPrices = prices
		c.fees = ""
		return nil
	}
}

// WithFees sets a fixed fee, e.g. "30000uluna". It replaces the gas prices.
func WithFees(fees string) Option {
	return func(c *config) error {
		if _, err := sdk.ParseCoinsNormalized(fees); err != nil {
			return ErrInvalidConfig.Wrapf("fees %q: %s", fees, err)
		}
		c.fees = fees
		c.gasPrices = ""
		return nil
	}
}

func WithMemo(memo string) Option {
	return func(c *config) error {
		c.memo = memo
		return nil
	}
}

// WithTxContext replaces the node backed account lookup, simulation and
// broadcast.
func WithTxContext(txCtx TxContext) Option {
	return func(c *config) error {
		c.txCtx = txCtx
		return nil
	}
}

// WithContractQuerier replaces the wasm query client.
func WithContractQuerier(querier ContractQuerier) Option {
	return func(c *config) error {
		c.querier = querier
		return nil
	}
}

// WithMetrics registers the client's collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) error {
		c.registerer = reg
		return nil
	}
}
