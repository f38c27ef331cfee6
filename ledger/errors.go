package ledger

// Sentinel values identifying every way transaction validation, state
// mutation, finalization and lock-table maintenance can fail. Callers
// attach context with errors.Wrapf and match with errors.Is.
var (
	// ErrEmptyInputs indicates a transaction with no inputs.
	ErrEmptyInputs = newRuleError("ErrEmptyInputs")

	// ErrEmptyOutputs indicates a transaction with no outputs.
	ErrEmptyOutputs = newRuleError("ErrEmptyOutputs")

	// ErrDuplicateInput indicates the same parent digest is consumed
	// more than once within one transaction.
	ErrDuplicateInput = newRuleError("ErrDuplicateInput")

	// ErrDuplicateOutput indicates two produced outputs hash to the
	// same digest.
	ErrDuplicateOutput = newRuleError("ErrDuplicateOutput")

	// ErrMissingInput indicates a referenced output does not exist in
	// the unspent set.
	ErrMissingInput = newRuleError("ErrMissingInput")

	// ErrOutputLocked indicates a referenced output exists but an active
	// lock forbids spending it at the current height.
	ErrOutputLocked = newRuleError("ErrOutputLocked")

	// ErrInvalidSignature indicates an input signature does not verify
	// against the referenced output's owner key.
	ErrInvalidSignature = newRuleError("ErrInvalidSignature")

	// ErrInputOverflow indicates the sum of consumed amounts does not
	// fit into 128 bits.
	ErrInputOverflow = newRuleError("ErrInputOverflow")

	// ErrZeroValueOutput indicates a produced output of value zero,
	// which would be permanently unspendable.
	ErrZeroValueOutput = newRuleError("ErrZeroValueOutput")

	// ErrOutputOverflow indicates the sum of produced amounts does not
	// fit into 128 bits.
	ErrOutputOverflow = newRuleError("ErrOutputOverflow")

	// ErrOverspend indicates the produced total exceeds the consumed
	// total.
	ErrOverspend = newRuleError("ErrOverspend")

	// ErrDustOverflow indicates overflow of the dust accumulator. It is
	// fatal to the operation: a verified transaction must never trigger it.
	ErrDustOverflow = newRuleError("ErrDustOverflow")

	// ErrNoAuthorities indicates redistribution was invoked with an empty
	// authority set. Fatal to finalization; the accumulator is left intact.
	ErrNoAuthorities = newRuleError("ErrNoAuthorities")

	// ErrAlreadyLocked indicates a lock entry already exists for the digest.
	ErrAlreadyLocked = newRuleError("ErrAlreadyLocked")

	// ErrNotLocked indicates there is no lock entry to remove.
	ErrNotLocked = newRuleError("ErrNotLocked")

	// ErrNotFound indicates no live output exists at the digest.
	ErrNotFound = newRuleError("ErrNotFound")

	// ErrPastBlockHeight indicates a lock expiry height not strictly
	// greater than the current height.
	ErrPastBlockHeight = newRuleError("ErrPastBlockHeight")

	// ErrBadOrigin indicates a dispatch entrypoint was invoked without
	// the inherent-origin capability.
	ErrBadOrigin = newRuleError("ErrBadOrigin")

	// ErrDuplicateGenesisOutput indicates two genesis seed outputs hash
	// to the same digest.
	ErrDuplicateGenesisOutput = newRuleError("ErrDuplicateGenesisOutput")
)

// RuleError identifies a ledger rule violation. Processing the offending
// transaction or call failed because of the rule, not because of an
// internal fault. Context is attached by wrapping, never stored inside.
type RuleError struct {
	message string
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.message
}

func newRuleError(message string) RuleError {
	return RuleError{message: message}
}
