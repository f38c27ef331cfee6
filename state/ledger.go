package state

import (
	"sync"

	"github.com/dustnet/utxoledger/ledger"
	"github.com/dustnet/utxoledger/util/eventqueue"
	"github.com/lunfardo314/unitrie/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"lukechampine.com/uint128"
)

// TransactionExecuted is posted to the event queue for each successfully
// executed transaction, for external observers such as indexers and wallets
type TransactionExecuted struct {
	Height ledger.BlockHeight
	Tx     *ledger.Transaction
}

// Ledger is the process-wide ledger state. All entrypoints are serialized
// behind one mutex: the mutator is not idempotent and re-entrant
// application on stale state would corrupt the accumulator and could
// resurrect already-spent outputs
type Ledger struct {
	mutex  sync.Mutex
	store  KVStore
	log    *zap.SugaredLogger
	events *eventqueue.Queue[TransactionExecuted]
}

// NewLedger wraps an already-seeded store. nil log disables logging
func NewLedger(store KVStore, log *zap.SugaredLogger) *Ledger {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Ledger{
		store: store,
		log:   log.Named("ledger"),
	}
}

// WithEventQueue attaches a queue for executed-transaction notifications.
// Without one, notifications are dropped
func (l *Ledger) WithEventQueue(q *eventqueue.Queue[TransactionExecuted]) *Ledger {
	l.events = q
	return l
}

// Readable returns read access to the current state. Sequencing with
// respect to mutation is the caller's responsibility
func (l *Ledger) Readable() Readable {
	return view{l.store}
}

// GetUTXO returns the live output at the digest, if any
func (l *Ledger) GetUTXO(digest ledger.Digest) (*ledger.Output, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return view{l.store}.GetUTXO(digest)
}

// DustTotal returns the accumulated leftover value awaiting redistribution
func (l *Ledger) DustTotal() ledger.Value {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return view{l.store}.dustTotal()
}

// Balance sums the live outputs owned by the key, saturating at the
// maximum representable amount
func (l *Ledger) Balance(owner ledger.PublicKey) ledger.Value {
	ret := ledger.Value{}
	l.forEachUTXO(func(_ ledger.Digest, out *ledger.Output) bool {
		if out.Owner == owner {
			var ok bool
			if ret, ok = ledger.AddValue(ret, out.Amount); !ok {
				ret = uint128.Max
				return false
			}
		}
		return true
	})
	return ret
}

// NumUTXOs counts the live outputs owned by the key
func (l *Ledger) NumUTXOs(owner ledger.PublicKey) int {
	ret := 0
	l.forEachUTXO(func(_ ledger.Digest, out *ledger.Output) bool {
		if out.Owner == owner {
			ret++
		}
		return true
	})
	return ret
}

// OutputWithDigest pairs a live output with its digest
type OutputWithDigest struct {
	Digest ledger.Digest
	Output *ledger.Output
}

// GetUTXOsForOwner returns the live outputs owned by the key. Order is
// non-deterministic
func (l *Ledger) GetUTXOsForOwner(owner ledger.PublicKey) []OutputWithDigest {
	ret := make([]OutputWithDigest, 0)
	l.forEachUTXO(func(digest ledger.Digest, out *ledger.Output) bool {
		if out.Owner == owner {
			ret = append(ret, OutputWithDigest{Digest: digest, Output: out})
		}
		return true
	})
	return ret
}

func (l *Ledger) forEachUTXO(fun func(digest ledger.Digest, out *ledger.Output) bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	prefix := []byte{PartitionUTXO}
	l.store.Iterator(prefix).Iterate(func(k, v []byte) bool {
		digest, err := ledger.DigestFromBytes(k[len(prefix):])
		common.AssertNoError(err)
		out, err := ledger.OutputFromBytes(v)
		common.AssertNoError(err)
		return fun(digest, out)
	})
}

// applyTransaction commits the effects of a verified transaction: credits
// dust to the accumulator, deletes consumed outputs, inserts produced ones.
// One batch, so a fault can never leave a partial application behind.
// Must only be called under the mutex, right after Verify succeeded on the
// same state
func (l *Ledger) applyTransaction(tx *ledger.Transaction, dust ledger.Value) error {
	dustTotal, ok := ledger.AddValue(view{l.store}.dustTotal(), dust)
	if !ok {
		return errors.Wrap(ledger.ErrDustOverflow, "dust accumulator overflows 128 bits")
	}

	batch := l.store.BatchedWriter()
	batch.Set(dustKey, ledger.ValueBytes(dustTotal))
	for i := range tx.Inputs {
		batch.Set(utxoKey(tx.Inputs[i].ParentDigest), nil)
	}
	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		batch.Set(utxoKey(out.Digest()), out.Bytes())
	}
	if err := batch.Commit(); err != nil {
		panic(err)
	}
	return nil
}
