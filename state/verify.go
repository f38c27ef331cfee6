package state

import (
	"github.com/dustnet/utxoledger/ledger"
	"github.com/pkg/errors"
)

// Totals are the aggregate amounts of a successfully verified transaction.
// The dust surrendered by the transaction is Input - Output
type Totals struct {
	Input  ledger.Value
	Output ledger.Value
}

// Dust is the leftover value surrendered to the ledger
func (t Totals) Dust() ledger.Value {
	return t.Input.Sub(t.Output)
}

// Verify checks the transaction against a snapshot of the ledger state at
// the given height. It is pure: no mutation, usable as a pre-check before
// commit. Checks run in a fixed order and the first failure short-circuits,
// so error reporting is deterministic for any given transaction and state
func Verify(tx *ledger.Transaction, state Readable, height ledger.BlockHeight) (Totals, error) {
	if len(tx.Inputs) == 0 {
		return Totals{}, errors.Wrap(ledger.ErrEmptyInputs, "transaction has no inputs")
	}
	if len(tx.Outputs) == 0 {
		return Totals{}, errors.Wrap(ledger.ErrEmptyOutputs, "transaction has no outputs")
	}

	consumed := make(map[ledger.Digest]struct{}, len(tx.Inputs))
	for i := range tx.Inputs {
		d := tx.Inputs[i].ParentDigest
		if _, already := consumed[d]; already {
			return Totals{}, errors.Wrapf(ledger.ErrDuplicateInput, "parent output %s consumed twice", d.String())
		}
		consumed[d] = struct{}{}
	}

	produced := make(map[ledger.Digest]struct{}, len(tx.Outputs))
	for i := range tx.Outputs {
		d := tx.Outputs[i].Digest()
		if _, already := produced[d]; already {
			return Totals{}, errors.Wrapf(ledger.ErrDuplicateOutput, "duplicate produced output %s", d.String())
		}
		produced[d] = struct{}{}
	}

	var ret Totals
	var ok bool
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		parent, found := state.GetUTXO(in.ParentDigest)
		if !found {
			return Totals{}, errors.Wrapf(ledger.ErrMissingInput, "parent output %s does not exist", in.ParentDigest.String())
		}
		if lock, locked := state.GetLockStatus(in.ParentDigest); locked && !lock.Spendable(height) {
			return Totals{}, errors.Wrapf(ledger.ErrOutputLocked, "parent output %s is %s at height %d",
				in.ParentDigest.String(), lock.String(), height)
		}
		if !in.VerifySignature(parent.Owner) {
			return Totals{}, errors.Wrapf(ledger.ErrInvalidSignature, "invalid signature for parent output %s", in.ParentDigest.String())
		}
		if ret.Input, ok = ledger.AddValue(ret.Input, parent.Amount); !ok {
			return Totals{}, errors.Wrap(ledger.ErrInputOverflow, "total consumed amount overflows 128 bits")
		}
	}

	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		if out.Amount.IsZero() {
			return Totals{}, errors.Wrapf(ledger.ErrZeroValueOutput, "produced output #%d has zero value", i)
		}
		if ret.Output, ok = ledger.AddValue(ret.Output, out.Amount); !ok {
			return Totals{}, errors.Wrap(ledger.ErrOutputOverflow, "total produced amount overflows 128 bits")
		}
	}

	if ret.Output.Cmp(ret.Input) > 0 {
		return Totals{}, errors.Wrapf(ledger.ErrOverspend, "produced total %s exceeds consumed total %s",
			ret.Output.String(), ret.Input.String())
	}
	return ret, nil
}
