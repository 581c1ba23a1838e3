package msgs

import (
	"regexp"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var coinExpr = regexp.MustCompile(`^([+-]?[0-9.]+)\s*([a-zA-Z][a-zA-Z0-9/:._-]*)$`)

// NewCoin returns a coin without validating it; BuildExecuteMessage does that.
func NewCoin(denom string, amount int64) sdk.Coin {
	return sdk.Coin{Denom: denom, Amount: math.NewInt(amount)}
}

// ValidateFunds checks that every coin has a valid denom and a strictly
// positive amount and that no denom repeats. It returns a sorted copy.
func ValidateFunds(funds ...sdk.Coin) (sdk.Coins, error) {
	if len(funds) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(funds))
	coins := make(sdk.Coins, 0, len(funds))
	for _, coin := range funds {
		if err := sdk.ValidateDenom(coin.Denom); err != nil {
			return nil, ErrInvalidDenom.Wrapf("%q: %s", coin.Denom, err)
		}
		if coin.Amount.IsNil() || !coin.Amount.IsPositive() {
			return nil, ErrInvalidAmount.Wrapf("%s amount must be positive, got %s", coin.Denom, amountString(coin.Amount))
		}
		if _, dup := seen[coin.Denom]; dup {
			return nil, ErrInvalidDenom.Wrapf("duplicate denom %q", coin.Denom)
		}
		seen[coin.Denom] = struct{}{}
		coins = append(coins, sdk.Coin{Denom: coin.Denom, Amount: coin.Amount})
	}

	return coins.Sort(), nil
}

// ParseFunds parses a comma separated list such as "1000000uluna,5uusd".
// Amounts must be plain integers; decimal amounts are rejected instead of
// being truncated.
func ParseFunds(s string) (sdk.Coins, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var funds []sdk.Coin
	for _, part := range strings.Split(s, ",") {
		match := coinExpr.FindStringSubmatch(strings.TrimSpace(part))
		if match == nil {
			return nil, ErrInvalidAmount.Wrapf("unable to parse coin %q", part)
		}
		amount, ok := math.NewIntFromString(match[1])
		if !ok {
			return nil, ErrInvalidAmount.Wrapf("amount %q in %q is not an integer", match[1], part)
		}
		funds = append(funds, sdk.Coin{Denom: match[2], Amount: amount})
	}

	return ValidateFunds(funds...)
}

func amountString(amount math.Int) string {
	if amount.IsNil() {
		return "<nil>"
	}
	return amount.String()
}
