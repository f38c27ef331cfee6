package state

import (
	"github.com/dustnet/utxoledger/ledger"
	"github.com/pkg/errors"
)

// Origin is the capability token of a dispatch call. The framework driving
// block execution passes OriginInherent; anything else is rejected before
// any state is read
type Origin byte

const (
	OriginNone = Origin(iota)
	// OriginInherent marks a call made by the block author's own machinery
	OriginInherent
)

// Execute verifies the transaction against the current state and, only on
// success, atomically applies its effects: consumed outputs disappear,
// produced outputs appear, leftover value is credited to the dust
// accumulator. On failure nothing is written
func (l *Ledger) Execute(origin Origin, height ledger.BlockHeight, tx *ledger.Transaction) error {
	if origin != OriginInherent {
		return errors.Wrap(ledger.ErrBadOrigin, "execute requires inherent origin")
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	totals, err := Verify(tx, view{l.store}, height)
	if err != nil {
		return err
	}
	if err = l.applyTransaction(tx, totals.Dust()); err != nil {
		return err
	}
	if l.events != nil {
		l.events.Post(TransactionExecuted{Height: height, Tx: tx})
	}
	l.log.Debugf("executed %s at height %d, dust %s", tx.String(), height, totals.Dust().String())
	return nil
}

// OnFinalize is called by the block execution framework exactly once per
// block, between the last transaction of the block and the first of the
// next, with the current consensus authority set. It redistributes the
// accumulated dust. A returned error is fatal to finalization and must not
// be swallowed by the caller
func (l *Ledger) OnFinalize(height ledger.BlockHeight, authorities []ledger.PublicKey) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.redistribute(height, authorities)
}
