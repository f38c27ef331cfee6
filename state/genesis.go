package state

import (
	"github.com/dustnet/utxoledger/ledger"
	"github.com/lunfardo314/unitrie/common"
	"github.com/pkg/errors"
)

// InitLedgerState seeds the store with the initial output set before any
// transaction is processed. Zero-value outputs and duplicate digests in
// the seed list are rejected: silently overwriting a genesis entry would
// destroy value
func InitLedgerState(store KVStore, initial []*ledger.Output) error {
	seen := make(map[ledger.Digest]struct{}, len(initial))
	batch := store.BatchedWriter()
	for i, out := range initial {
		if out.Amount.IsZero() {
			return errors.Wrapf(ledger.ErrZeroValueOutput, "genesis output #%d has zero value", i)
		}
		digest := out.Digest()
		if _, already := seen[digest]; already {
			return errors.Wrapf(ledger.ErrDuplicateGenesisOutput, "duplicate genesis output %s", digest.String())
		}
		seen[digest] = struct{}{}
		batch.Set(utxoKey(digest), out.Bytes())
	}
	return batch.Commit()
}

// MustInitLedgerState is InitLedgerState which panics on a bad seed list
func MustInitLedgerState(store KVStore, initial []*ledger.Output) {
	common.AssertNoError(InitLedgerState(store, initial))
}

// NewLedgerInMemory seeds an in-memory store and wraps it. Mostly for
// testing
func NewLedgerInMemory(initial []*ledger.Output) (*Ledger, error) {
	store := common.NewInMemoryKVStore()
	if err := InitLedgerState(store, initial); err != nil {
		return nil, err
	}
	return NewLedger(store, nil), nil
}
