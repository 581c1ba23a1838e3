package scripts

import (
	"github.com/cometbft/cometbft/libs/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Option configures Scripts.
type Option func(*Scripts)

func WithLogger(logger log.Logger) Option {
	return func(s *Scripts) {
		s.logger = logger
	}
}

// WithJournal records a receipt for every broadcast transaction.
func WithJournal(r Recorder) Option {
	return func(s *Scripts) {
		s.recorder = r
	}
}

type call struct {
	signer string
	funds  sdk.Coins
}

// CallOption overrides a default of a single script call.
type CallOption func(*call)

// WithSigner signs with the named wallet instead of the script's default.
func WithSigner(name string) CallOption {
	return func(c *call) {
		if name != "" {
			c.signer = name
		}
	}
}

// WithFunds attaches funds instead of the script's default. Passing no coins
// sends none.
func WithFunds(funds ...sdk.Coin) CallOption {
	return func(c *call) {
		c.funds = funds
	}
}

func newCall(signer string, funds sdk.Coins, opts []CallOption) call {
	c := call{signer: signer, funds: funds}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
