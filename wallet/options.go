package wallet

import (
	"github.com/cometbft/cometbft/libs/log"

	"github.com/baron-chain/cwscripts/app/params"
)

type config struct {
	coinType uint32
	prefix   string
	logger   log.Logger
}

// Option configures a Registry.
type Option func(*config)

func defaultConfig() config {
	return config{
		coinType: params.DefaultCoinType,
		prefix:   params.DefaultBech32Prefix,
		logger:   log.NewNopLogger(),
	}
}

// WithCoinType sets the BIP-44 coin type used in the derivation path.
func WithCoinType(coinType uint32) Option {
	return func(c *config) {
		c.coinType = coinType
	}
}

// WithBech32Prefix sets the human readable part of derived addresses.
func WithBech32Prefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
