package msgs

import "cosmossdk.io/math"

// CW20 token messages. Uint128 amounts travel as decimal strings, which is
// how math.Int marshals.
type (
	Mint struct {
		Recipient string   `json:"recipient"`
		Amount    math.Int `json:"amount"`
	}

	Transfer struct {
		Recipient string   `json:"recipient"`
		Amount    math.Int `json:"amount"`
	}

	Balance struct {
		Address string `json:"address"`
	}

	TokenInfo struct{}

	BalanceResponse struct {
		Balance math.Int `json:"balance"`
	}

	TokenInfoResponse struct {
		Name        string   `json:"name"`
		Symbol      string   `json:"symbol"`
		Decimals    uint8    `json:"decimals"`
		TotalSupply math.Int `json:"total_supply"`
	}
)

func (Mint) Action() string      { return "mint" }
func (Transfer) Action() string  { return "transfer" }
func (Balance) Action() string   { return "balance" }
func (TokenInfo) Action() string { return "token_info" }
