package app

import (
	"github.com/cosmos/cosmos-sdk/std"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/cosmos/cosmos-sdk/x/auth"
	"github.com/cosmos/cosmos-sdk/x/bank"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"

	"github.com/baron-chain/cwscripts/app/params"
)

// ModuleBasics are the modules whose types cross the wire: accounts for the
// sequence lookup, bank for funds.
var ModuleBasics = module.NewBasicManager(
	auth.AppModuleBasic{},
	bank.AppModuleBasic{},
)

// MakeEncodingConfig creates an EncodingConfig with the std, auth, bank and
// wasm types registered.
func MakeEncodingConfig() params.EncodingConfig {
	encodingConfig := params.MakeEncodingConfig()

	std.RegisterLegacyAminoCodec(encodingConfig.Amino)
	std.RegisterInterfaces(encodingConfig.InterfaceRegistry)

	ModuleBasics.RegisterLegacyAminoCodec(encodingConfig.Amino)
	ModuleBasics.RegisterInterfaces(encodingConfig.InterfaceRegistry)

	// the wasm module itself would pull in the VM; its types are enough here
	wasmtypes.RegisterLegacyAminoCodec(encodingConfig.Amino)
	wasmtypes.RegisterInterfaces(encodingConfig.InterfaceRegistry)

	return encodingConfig
}
