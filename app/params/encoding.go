package params

import (
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/types"
)

// EncodingConfig groups the codecs needed to build, sign and decode
// transactions as well as to decode query responses.
type EncodingConfig struct {
	InterfaceRegistry types.InterfaceRegistry // resolves Any-packed messages, accounts and keys
	Marshaler         codec.Codec             // protobuf codec, also used by the keyring
	TxConfig          client.TxConfig         // tx builder, encoder and sign mode handler
	Amino             *codec.LegacyAmino      // legacy codec for amino-JSON signing
}
