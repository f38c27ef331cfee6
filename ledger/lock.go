package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

const (
	lockIndefinite = byte(iota)
	lockUntil
)

// LockStatus restricts spendability of one output digest independently of
// the output's existence. The zero value is the indefinite lock
type LockStatus struct {
	kind  byte
	until BlockHeight
}

// LockIndefinite never expires; the digest stays unspendable until
// explicitly unlocked
func LockIndefinite() LockStatus {
	return LockStatus{kind: lockIndefinite}
}

// LockUntil expires by height: the digest becomes spendable once the
// current height is strictly greater than 'until'
func LockUntil(until BlockHeight) LockStatus {
	return LockStatus{kind: lockUntil, until: until}
}

func LockStatusFromBytes(data []byte) (LockStatus, error) {
	switch {
	case len(data) == 1 && data[0] == lockIndefinite:
		return LockIndefinite(), nil
	case len(data) == 9 && data[0] == lockUntil:
		return LockUntil(BlockHeight(binary.BigEndian.Uint64(data[1:]))), nil
	}
	return LockStatus{}, errors.New("LockStatusFromBytes: invalid lock status data")
}

func (l LockStatus) Bytes() []byte {
	if l.kind == lockIndefinite {
		return []byte{lockIndefinite}
	}
	ret := make([]byte, 9)
	ret[0] = lockUntil
	binary.BigEndian.PutUint64(ret[1:], uint64(l.until))
	return ret
}

// Spendable tells if the lock permits spending at the given height
func (l LockStatus) Spendable(current BlockHeight) bool {
	return l.kind == lockUntil && current > l.until
}

func (l LockStatus) String() string {
	if l.kind == lockIndefinite {
		return "locked"
	}
	return fmt.Sprintf("locked until %d", l.until)
}
