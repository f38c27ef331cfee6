// Package state implements the authoritative ledger state over a key-value
// store: the unspent output set, the lock table and the dust accumulator,
// together with transaction verification, atomic mutation, per-block dust
// redistribution and the privileged dispatch surface.
package state

import (
	"github.com/dustnet/utxoledger/ledger"
	"github.com/lunfardo314/unitrie/common"
)

// KVStore is the backing store of the ledger state
type KVStore interface {
	common.KVReader
	common.BatchedUpdatable
	common.Traversable
}

// key prefixes partitioning the store
const (
	PartitionUTXO = byte(iota)
	PartitionLocks
	PartitionDust
)

var dustKey = []byte{PartitionDust}

func utxoKey(d ledger.Digest) []byte {
	return common.Concat(PartitionUTXO, d.Bytes())
}

func lockKey(d ledger.Digest) []byte {
	return common.Concat(PartitionLocks, d.Bytes())
}

// Readable is read access to a consistent snapshot of the ledger state.
// Verify only needs this much
type Readable interface {
	// GetUTXO returns the live output at the digest, if any
	GetUTXO(digest ledger.Digest) (*ledger.Output, bool)
	// GetLockStatus returns the active lock entry for the digest, if any
	GetLockStatus(digest ledger.Digest) (ledger.LockStatus, bool)
}

// view is Readable over a raw KV reader. The caller is responsible for not
// mutating the store while reading through it
type view struct {
	store common.KVReader
}

func (v view) GetUTXO(digest ledger.Digest) (*ledger.Output, bool) {
	data := v.store.Get(utxoKey(digest))
	if len(data) == 0 {
		return nil, false
	}
	out, err := ledger.OutputFromBytes(data)
	common.AssertNoError(err)
	return out, true
}

func (v view) GetLockStatus(digest ledger.Digest) (ledger.LockStatus, bool) {
	data := v.store.Get(lockKey(digest))
	if len(data) == 0 {
		return ledger.LockStatus{}, false
	}
	ret, err := ledger.LockStatusFromBytes(data)
	common.AssertNoError(err)
	return ret, true
}

func (v view) dustTotal() ledger.Value {
	data := v.store.Get(dustKey)
	if len(data) == 0 {
		return ledger.Value{}
	}
	out, err := ledger.ValueFromBytes(data)
	common.AssertNoError(err)
	return out
}
