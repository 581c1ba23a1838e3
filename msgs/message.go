package msgs

import (
	"bytes"
	"encoding/json"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
)

// Payload is a typed contract message body that knows the action tag it is
// sent under, e.g. Mint is sent as {"mint": {...}}.
type Payload interface {
	Action() string
}

// Message is a single contract execution, ready to be converted into a
// MsgExecuteContract. It is never mutated after BuildExecuteMessage returns.
type Message struct {
	Sender   string
	Contract string
	Action   string
	Payload  json.RawMessage
	Funds    sdk.Coins
}

// BuildExecuteMessage assembles an execute message for contract. payload may
// be nil (sent as {}), raw JSON bytes, or any value that marshals to a JSON
// object. Funds are validated and sorted by denom; amounts are kept as given.
func BuildExecuteMessage(
	sender, contract, action string,
	payload any,
	funds ...sdk.Coin,
) (*Message, error) {
	if strings.TrimSpace(action) == "" {
		return nil, ErrInvalidPayload.Wrap("action tag is empty")
	}

	body, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}

	coins, err := ValidateFunds(funds...)
	if err != nil {
		return nil, err
	}

	return &Message{
		Sender:   sender,
		Contract: contract,
		Action:   action,
		Payload:  body,
		Funds:    coins,
	}, nil
}

// Execute builds an execute message from a typed payload.
func Execute(sender, contract string, p Payload, funds ...sdk.Coin) (*Message, error) {
	return BuildExecuteMessage(sender, contract, p.Action(), p, funds...)
}

// Body returns the wire form of the message: {"<action>": <payload>}.
func (m *Message) Body() json.RawMessage {
	return wrap(m.Action, m.Payload)
}

// ToMsg converts the message into the wasm module's execute message.
func (m *Message) ToMsg() *wasmtypes.MsgExecuteContract {
	return &wasmtypes.MsgExecuteContract{
		Sender:   m.Sender,
		Contract: m.Contract,
		Msg:      wasmtypes.RawContractMessage(m.Body()),
		Funds:    m.Funds,
	}
}

// QueryMessage builds a smart query body {"<action>": <payload>}.
func QueryMessage(action string, payload any) (json.RawMessage, error) {
	if strings.TrimSpace(action) == "" {
		return nil, ErrInvalidPayload.Wrap("query tag is empty")
	}
	body, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	return wrap(action, body), nil
}

// Query builds a smart query body from a typed payload.
func Query(p Payload) (json.RawMessage, error) {
	return QueryMessage(p.Action(), p)
}

func wrap(action string, body json.RawMessage) json.RawMessage {
	// Only the key needs escaping; body is already valid JSON.
	key, _ := json.Marshal(action)

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(body)
	buf.WriteByte('}')
	return buf.Bytes()
}

func encodePayload(payload any) (json.RawMessage, error) {
	var raw []byte
	switch p := payload.(type) {
	case nil:
		return json.RawMessage(`{}`), nil
	case json.RawMessage:
		raw = p
	case []byte:
		raw = p
	case string:
		raw = []byte(p)
	default:
		bz, err := json.Marshal(p)
		if err != nil {
			return nil, ErrInvalidPayload.Wrapf("unable to marshal payload: %s", err)
		}
		raw = bz
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return json.RawMessage(`{}`), nil
	}
	if !json.Valid(raw) {
		return nil, ErrInvalidPayload.Wrapf("payload is not valid JSON: %s", raw)
	}
	if raw[0] != '{' {
		return nil, ErrInvalidPayload.Wrapf("payload must be a JSON object, got %s", raw)
	}

	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, nil
}

// Raw is an untyped payload sent under an arbitrary action tag. An empty
// Body is sent as {}.
type Raw struct {
	Tag  string
	Body json.RawMessage
}

func (r Raw) Action() string { return r.Tag }

func (r Raw) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return []byte(`{}`), nil
	}
	return r.Body, nil
}
