package state

import (
	"github.com/dustnet/utxoledger/ledger"
	"github.com/pkg/errors"
)

// redistribute divides the accumulated dust evenly among the authorities
// and mints one output per authority, salted with the block height. The
// division remainder is carried forward in the accumulator for the next
// cycle. The authority check comes first so that the NoAuthorities failure
// path leaves the accumulator untouched.
// Must only be called under the mutex
func (l *Ledger) redistribute(height ledger.BlockHeight, authorities []ledger.PublicKey) error {
	if len(authorities) == 0 {
		return errors.Wrap(ledger.ErrNoAuthorities, "dust redistribution requires a non-empty authority set")
	}

	v := view{l.store}
	dust := v.dustTotal()
	share := dust.Div64(uint64(len(authorities)))
	remainder := dust.Sub(share.Mul64(uint64(len(authorities))))

	batch := l.store.BatchedWriter()
	batch.Set(dustKey, ledger.ValueBytes(remainder))
	if !share.IsZero() {
		for i := range authorities {
			out := ledger.NewOutput(share, authorities[i], uint64(height))
			digest := out.Digest()
			if _, exists := v.GetUTXO(digest); exists {
				// blake2b collision with a live output. Astronomically
				// unlikely; the single payout is dropped, not the cycle
				l.log.Warnf("leftover share %s wasted due to digest collision at %s", share.String(), digest.String())
				continue
			}
			batch.Set(utxoKey(digest), out.Bytes())
			l.log.Debugf("leftover share %s sent to %s", share.String(), authorities[i].String())
		}
	}
	if err := batch.Commit(); err != nil {
		panic(err)
	}
	return nil
}
