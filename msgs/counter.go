package msgs

// Counter contract messages.
type (
	Increment struct{}

	Reset struct {
		Count int32 `json:"count"`
	}

	GetCount struct{}

	CountResponse struct {
		Count int32 `json:"count"`
	}
)

func (Increment) Action() string { return "increment" }
func (Reset) Action() string     { return "reset" }
func (GetCount) Action() string  { return "get_count" }
