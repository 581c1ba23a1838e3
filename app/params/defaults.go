package params

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	DefaultChainID      = "localterra"
	DefaultNode         = "http://localhost:26657"
	DefaultBech32Prefix = "terra"
	DefaultCoinType     = 330
	DefaultDenom        = "uluna"

	DefaultGas           = "auto"
	DefaultGasAdjustment = 1.5
	DefaultGasPrices     = "0.15uluna"

	DefaultTimeout      = 30 * time.Second
	DefaultPollInterval = 2 * time.Second
)

// SetAddressPrefixes points the process wide sdk address config at prefix.
// Message validation and account lookups in the SDK render addresses through
// this config, so it has to be set before any of them run. The caller decides
// whether to seal it afterwards.
func SetAddressPrefixes(prefix string) {
	cfg := sdk.GetConfig()
	cfg.SetBech32PrefixForAccount(prefix, prefix+sdk.PrefixPublic)
	cfg.SetBech32PrefixForValidator(
		prefix+sdk.PrefixValidator+sdk.PrefixOperator,
		prefix+sdk.PrefixValidator+sdk.PrefixOperator+sdk.PrefixPublic,
	)
	cfg.SetBech32PrefixForConsensusNode(
		prefix+sdk.PrefixValidator+sdk.PrefixConsensus,
		prefix+sdk.PrefixValidator+sdk.PrefixConsensus+sdk.PrefixPublic,
	)
}
