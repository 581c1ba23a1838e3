package msgs

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSender   = "terra1x46rqay4d3cssq8gxxvqz8xt6nwlz4td20k38v"
	testContract = "terra1qzsr47twxtnh5wrsevw4r7acwg0hyrpgqyxfk3"
)

func TestBuildExecuteMessage(t *testing.T) {
	specs := map[string]struct {
		action  string
		payload any
		funds   []sdk.Coin
		expBody string
		expErr  error
	}{
		"typed payload": {
			action:  "mint",
			payload: Mint{Recipient: testSender, Amount: math.NewInt(1_000_000_000)},
			expBody: `{"mint":{"recipient":"` + testSender + `","amount":"1000000000"}}`,
		},
		"nil payload": {
			action:  "increment",
			expBody: `{"increment":{}}`,
		},
		"raw payload": {
			action:  "update_price",
			payload: json.RawMessage(`{"price":102}`),
			expBody: `{"update_price":{"price":102}}`,
		},
		"string payload with whitespace": {
			action:  "buy",
			payload: "  {}  ",
			expBody: `{"buy":{}}`,
		},
		"with funds": {
			action:  "buy",
			funds:   []sdk.Coin{NewCoin("uluna", 1_000_000)},
			expBody: `{"buy":{}}`,
		},
		"empty action": {
			action: " ",
			expErr: ErrInvalidPayload,
		},
		"invalid json": {
			action:  "mint",
			payload: json.RawMessage(`{"recipient":`),
			expErr:  ErrInvalidPayload,
		},
		"non object payload": {
			action:  "mint",
			payload: []int{1, 2},
			expErr:  ErrInvalidPayload,
		},
		"zero funds": {
			action: "buy",
			funds:  []sdk.Coin{NewCoin("uluna", 0)},
			expErr: ErrInvalidAmount,
		},
		"negative funds": {
			action: "buy",
			funds:  []sdk.Coin{NewCoin("uluna", -1)},
			expErr: ErrInvalidAmount,
		},
		"nil amount": {
			action: "buy",
			funds:  []sdk.Coin{{Denom: "uluna"}},
			expErr: ErrInvalidAmount,
		},
		"invalid denom": {
			action: "buy",
			funds:  []sdk.Coin{NewCoin("1x", 5)},
			expErr: ErrInvalidDenom,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			msg, err := BuildExecuteMessage(testSender, testContract, spec.action, spec.payload, spec.funds...)
			if spec.expErr != nil {
				require.ErrorIs(t, err, spec.expErr)
				require.Nil(t, msg)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, spec.expBody, string(msg.Body()))
			assert.Equal(t, testSender, msg.Sender)
			assert.Equal(t, testContract, msg.Contract)
			assert.Equal(t, spec.action, msg.Action)
			assert.Equal(t, len(spec.funds), len(msg.Funds))
		})
	}
}

func TestBuildExecuteMessageKeepsFundsExactly(t *testing.T) {
	amount, ok := math.NewIntFromString("340282366920938463463374607431768211455")
	require.True(t, ok)

	msg, err := BuildExecuteMessage(testSender, testContract, "buy", nil, sdk.Coin{Denom: "uluna", Amount: amount})
	require.NoError(t, err)
	require.Len(t, msg.Funds, 1)
	assert.Equal(t, "uluna", msg.Funds[0].Denom)
	assert.True(t, amount.Equal(msg.Funds[0].Amount))
}

func TestToMsg(t *testing.T) {
	msg, err := Execute(testSender, testContract, Buy{}, NewCoin("uusd", 5), NewCoin("uluna", 500_000))
	require.NoError(t, err)

	wasmMsg := msg.ToMsg()
	assert.Equal(t, testSender, wasmMsg.Sender)
	assert.Equal(t, testContract, wasmMsg.Contract)
	assert.JSONEq(t, `{"buy":{}}`, string(wasmMsg.Msg))
	// sorted by denom
	require.Len(t, wasmMsg.Funds, 2)
	assert.Equal(t, "uluna", wasmMsg.Funds[0].Denom)
	assert.Equal(t, "uusd", wasmMsg.Funds[1].Denom)
	assert.NoError(t, wasmMsg.Msg.ValidateBasic())
}

func TestQueryMessage(t *testing.T) {
	specs := map[string]struct {
		payload Payload
		exp     string
	}{
		"query price": {payload: QueryPrice{}, exp: `{"query_price":{}}`},
		"get count":   {payload: GetCount{}, exp: `{"get_count":{}}`},
		"balance":     {payload: Balance{Address: testSender}, exp: `{"balance":{"address":"` + testSender + `"}}`},
		"token info":  {payload: TokenInfo{}, exp: `{"token_info":{}}`},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			body, err := Query(spec.payload)
			require.NoError(t, err)
			assert.JSONEq(t, spec.exp, string(body))
		})
	}

	_, err := QueryMessage("", nil)
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestTypedExecutePayloads(t *testing.T) {
	specs := map[string]struct {
		payload Payload
		exp     string
	}{
		"increment":    {payload: Increment{}, exp: `{"increment":{}}`},
		"reset":        {payload: Reset{Count: 7}, exp: `{"reset":{"count":7}}`},
		"update price": {payload: UpdatePrice{Price: 102}, exp: `{"update_price":{"price":102}}`},
		"withdraw":     {payload: Withdraw{Amount: 10}, exp: `{"withdraw":{"amount":10}}`},
		"transfer": {
			payload: Transfer{Recipient: testSender, Amount: math.NewInt(765)},
			exp:     `{"transfer":{"recipient":"` + testSender + `","amount":"765"}}`,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			msg, err := Execute(testSender, testContract, spec.payload)
			require.NoError(t, err)
			assert.JSONEq(t, spec.exp, string(msg.Body()))
		})
	}
}

func TestDecodePrice(t *testing.T) {
	specs := map[string]struct {
		raw    string
		exp    uint64
		expErr bool
	}{
		"bare":    {raw: `28`, exp: 28},
		"quoted":  {raw: `"102"`, exp: 102},
		"wrapped": {raw: `{"price":17}`, exp: 17},
		"garbage": {raw: `{"foo":1}`, expErr: true},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			price, err := DecodePrice(json.RawMessage(spec.raw))
			if spec.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, spec.exp, price)
		})
	}
}

func TestRawPayload(t *testing.T) {
	msg, err := Execute(testSender, testContract, Raw{Tag: "reset", Body: json.RawMessage(`{"count": 3}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reset":{"count":3}}`, string(msg.Body()))

	msg, err = Execute(testSender, testContract, Raw{Tag: "increment"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"increment":{}}`, string(msg.Body()))

	_, err = Execute(testSender, testContract, Raw{Tag: "reset", Body: json.RawMessage(`{"count":`)})
	require.ErrorIs(t, err, ErrInvalidPayload)

	_, err = Execute(testSender, testContract, Raw{Tag: "reset", Body: json.RawMessage(`[1]`)})
	require.ErrorIs(t, err, ErrInvalidPayload)
}
