package rpc

import sdk "github.com/cosmos/cosmos-sdk/types"

// TransactionResult is the outcome of a broadcast as reported by the node.
// Success is false when the ledger rejected the transaction; that is a
// normal result, not an error.
type TransactionResult struct {
	Success   bool   `json:"success" yaml:"success"`
	TxHash    string `json:"txhash" yaml:"txhash"`
	Height    int64  `json:"height,omitempty" yaml:"height,omitempty"`
	Code      uint32 `json:"code" yaml:"code"`
	Codespace string `json:"codespace,omitempty" yaml:"codespace,omitempty"`
	RawLog    string `json:"raw_log,omitempty" yaml:"raw_log,omitempty"`
	GasWanted int64  `json:"gas_wanted,omitempty" yaml:"gas_wanted,omitempty"`
	GasUsed   int64  `json:"gas_used,omitempty" yaml:"gas_used,omitempty"`
}

func NewTransactionResult(res *sdk.TxResponse) *TransactionResult {
	return &TransactionResult{
		Success:   res.Code == 0,
		TxHash:    res.TxHash,
		Height:    res.Height,
		Code:      res.Code,
		Codespace: res.Codespace,
		RawLog:    res.RawLog,
		GasWanted: res.GasWanted,
		GasUsed:   res.GasUsed,
	}
}

// rejected builds the result for a transaction the ledger refused before it
// was ever broadcast, e.g. a failed simulation.
func rejected(log string) *TransactionResult {
	return &TransactionResult{Success: false, RawLog: log}
}
