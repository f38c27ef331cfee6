package state

import (
	"github.com/dustnet/utxoledger/ledger"
	"github.com/pkg/errors"
)

// LockOutput restricts spendability of the digest: indefinitely with
// until == nil, otherwise up to and including the given height. The expiry
// must lie strictly in the future. Exposed for ledger-adjacent logic such
// as escrow or vesting
func (l *Ledger) LockOutput(digest ledger.Digest, until *ledger.BlockHeight, height ledger.BlockHeight) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	v := view{l.store}
	if _, locked := v.GetLockStatus(digest); locked {
		return errors.Wrapf(ledger.ErrAlreadyLocked, "output %s is already locked", digest.String())
	}
	if _, found := v.GetUTXO(digest); !found {
		return errors.Wrapf(ledger.ErrNotFound, "output %s does not exist", digest.String())
	}
	status := ledger.LockIndefinite()
	if until != nil {
		if *until <= height {
			return errors.Wrapf(ledger.ErrPastBlockHeight, "unlock height %d is not past the current height %d", *until, height)
		}
		status = ledger.LockUntil(*until)
	}

	batch := l.store.BatchedWriter()
	batch.Set(lockKey(digest), status.Bytes())
	if err := batch.Commit(); err != nil {
		panic(err)
	}
	l.log.Debugf("output %s now %s", digest.String(), status.String())
	return nil
}

// UnlockOutput removes the lock entry of the digest
func (l *Ledger) UnlockOutput(digest ledger.Digest) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if _, locked := (view{l.store}).GetLockStatus(digest); !locked {
		return errors.Wrapf(ledger.ErrNotLocked, "output %s is not locked", digest.String())
	}
	batch := l.store.BatchedWriter()
	batch.Set(lockKey(digest), nil)
	if err := batch.Commit(); err != nil {
		panic(err)
	}
	l.log.Debugf("output %s unlocked", digest.String())
	return nil
}
