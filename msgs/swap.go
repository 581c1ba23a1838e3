package msgs

// Swap contract messages. Buy pays with the funds attached to the
// transaction; Withdraw is owner only.
type (
	Buy struct{}

	Withdraw struct {
		Amount int32 `json:"amount"`
	}
)

func (Buy) Action() string      { return "buy" }
func (Withdraw) Action() string { return "withdraw" }
