package msgs

import (
	"encoding/json"
	"strconv"
)

// Oracle contract messages. UpdatePrice is owner only.
type (
	UpdatePrice struct {
		Price uint64 `json:"price"`
	}

	QueryPrice struct{}
)

func (UpdatePrice) Action() string { return "update_price" }
func (QueryPrice) Action() string  { return "query_price" }

// DecodePrice reads a query_price response. The oracle answers with a bare
// integer, some deployments wrap it as {"price": n} or quote it.
func DecodePrice(raw json.RawMessage) (uint64, error) {
	var price uint64
	if err := json.Unmarshal(raw, &price); err == nil {
		return price, nil
	}

	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		return strconv.ParseUint(quoted, 10, 64)
	}

	var wrapped struct {
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil || wrapped.Price == nil {
		return 0, ErrInvalidPayload.Wrapf("unexpected price response %s", raw)
	}
	return DecodePrice(wrapped.Price)
}
