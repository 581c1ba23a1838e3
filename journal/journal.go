package journal

import (
	"encoding/json"
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
	dbm "github.com/cometbft/cometbft-db"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/baron-chain/cwscripts/rpc"
)

const dbName = "journal"

var (
	codespace = "journal"

	ErrReceiptNotFound = errorsmod.Register(codespace, 2, "receipt not found")
	ErrCorruptReceipt  = errorsmod.Register(codespace, 3, "corrupt receipt")
)

var (
	txPrefix   = []byte("tx/")
	hashPrefix = []byte("hash/")
)

// Receipt is what the journal remembers about one broadcast.
type Receipt struct {
	TxHash   string    `json:"txhash" yaml:"txhash"`
	Wallet   string    `json:"wallet" yaml:"wallet"`
	Contract string    `json:"contract" yaml:"contract"`
	Action   string    `json:"action" yaml:"action"`
	Success  bool      `json:"success" yaml:"success"`
	Code     uint32    `json:"code" yaml:"code"`
	RawLog   string    `json:"raw_log,omitempty" yaml:"raw_log,omitempty"`
	Time     time.Time `json:"time" yaml:"time"`
}

// Journal is a local, append only record of broadcast receipts ordered by
// the time they were recorded.
type Journal struct {
	db  dbm.DB
	now func() time.Time
}

// Open opens or creates a goleveldb backed journal in dir.
func Open(dir string) (*Journal, error) {
	db, err := dbm.NewGoLevelDBWithOpts(dbName, dir, &opt.Options{BlockCacher: opt.NoCacher})
	if err != nil {
		return nil, errorsmod.Wrapf(err, "open journal in %s", dir)
	}
	return New(db), nil
}

// NewMem returns a journal that lives only in memory.
func NewMem() *Journal {
	return New(dbm.NewMemDB())
}

func New(db dbm.DB) *Journal {
	return &Journal{db: db, now: time.Now}
}

// Record stores the receipt for res. Results that never reached the ledger
// carry no hash and are not recorded.
func (j *Journal) Record(wallet, contract, action string, res *rpc.TransactionResult) (*Receipt, error) {
	if res == nil || res.TxHash == "" {
		return nil, nil
	}

	receipt := &Receipt{
		TxHash:   res.TxHash,
		Wallet:   wallet,
		Contract: contract,
		Action:   action,
		Success:  res.Success,
		Code:     res.Code,
		RawLog:   res.RawLog,
		Time:     j.now().UTC(),
	}
	bz, err := json.Marshal(receipt)
	if err != nil {
		return nil, err
	}

	key := receiptKey(receipt.Time, receipt.TxHash)
	batch := j.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(key, bz); err != nil {
		return nil, err
	}
	if err := batch.Set(hashKey(receipt.TxHash), key); err != nil {
		return nil, err
	}
	if err := batch.WriteSync(); err != nil {
		return nil, errorsmod.Wrap(err, "write receipt")
	}
	return receipt, nil
}

// Get returns the receipt recorded for hash.
func (j *Journal) Get(hash string) (*Receipt, error) {
	key, err := j.db.Get(hashKey(hash))
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, ErrReceiptNotFound.Wrap(hash)
	}

	bz, err := j.db.Get(key)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, ErrCorruptReceipt.Wrapf("index for %s points to a missing entry", hash)
	}
	return decode(bz)
}

// List returns up to limit receipts, newest first. A limit of zero or less
// returns everything.
func (j *Journal) List(limit int) ([]*Receipt, error) {
	it, err := j.db.ReverseIterator(txPrefix, prefixEnd(txPrefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	receipts := []*Receipt{}
	for ; it.Valid(); it.Next() {
		if limit > 0 && len(receipts) >= limit {
			break
		}
		receipt, err := decode(it.Value())
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, it.Error()
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func decode(bz []byte) (*Receipt, error) {
	var receipt Receipt
	if err := json.Unmarshal(bz, &receipt); err != nil {
		return nil, ErrCorruptReceipt.Wrap(err.Error())
	}
	return &receipt, nil
}

// receiptKey sorts by time; the zero padded nanosecond timestamp keeps the
// lexical and chronological order the same.
func receiptKey(t time.Time, hash string) []byte {
	return []byte(fmt.Sprintf("%s%020d/%s", txPrefix, t.UnixNano(), hash))
}

func hashKey(hash string) []byte {
	return append(append([]byte{}, hashPrefix...), hash...)
}

func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	end[len(end)-1]++
	return end
}
