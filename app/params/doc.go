/*
Package params defines the encoding configuration and the network defaults
used by cwscripts when it talks to a Terra-style CosmWasm chain.

The defaults can be replaced through the configuration file:

	chain_id: localterra
	bech32_prefix: terra
	coin_type: 330
	gas_prices: 0.15uluna

In the example above, addresses are rendered with the `terra` prefix and keys
are derived on the m/44'/330'/0'/0/0 path.
*/
package params
