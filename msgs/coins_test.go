package msgs

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFunds(t *testing.T) {
	specs := map[string]struct {
		src    string
		exp    sdk.Coins
		expErr error
	}{
		"empty": {src: ""},
		"single": {
			src: "1000000uluna",
			exp: sdk.Coins{NewCoin("uluna", 1_000_000)},
		},
		"multiple sorted": {
			src: "5uusd, 500000uluna",
			exp: sdk.Coins{NewCoin("uluna", 500_000), NewCoin("uusd", 5)},
		},
		"ibc denom": {
			src: "7ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2",
			exp: sdk.Coins{NewCoin("ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2", 7)},
		},
		"zero":      {src: "0uluna", expErr: ErrInvalidAmount},
		"negative":  {src: "-3uluna", expErr: ErrInvalidAmount},
		"decimal":   {src: "0.5uluna", expErr: ErrInvalidAmount},
		"no denom":  {src: "100", expErr: ErrInvalidAmount},
		"duplicate": {src: "1uluna,2uluna", expErr: ErrInvalidDenom},
		"bad denom": {src: "1u", expErr: ErrInvalidDenom},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			coins, err := ParseFunds(spec.src)
			if spec.expErr != nil {
				require.ErrorIs(t, err, spec.expErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(spec.exp), len(coins))
			for i := range spec.exp {
				assert.Equal(t, spec.exp[i].Denom, coins[i].Denom)
				assert.True(t, spec.exp[i].Amount.Equal(coins[i].Amount))
			}
		})
	}
}

func TestValidateFundsPreservesPositiveAmounts(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 200; i++ {
		var n uint64
		f.Fuzz(&n)
		if n == 0 {
			n = 1
		}
		amount := math.NewIntFromUint64(n)

		coins, err := ValidateFunds(sdk.Coin{Denom: "uluna", Amount: amount})
		require.NoError(t, err)
		require.Len(t, coins, 1)
		assert.Equal(t, amount.String(), coins[0].Amount.String())
	}
}

func TestValidateFundsRejectsNonPositiveAmounts(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 200; i++ {
		var n int64
		f.Fuzz(&n)
		if n > 0 {
			n = -n
		}

		_, err := ValidateFunds(NewCoin("uluna", n))
		require.ErrorIs(t, err, ErrInvalidAmount)
	}
}
