package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// OutputLength is the size of the canonical output encoding:
// amount(16, big-endian) || owner(32) || salt(8, big-endian)
const OutputLength = 16 + PublicKeyLength + 8

// Output is a spendable unit of value. Salt disambiguates otherwise
// identical (amount, owner) records so that they hash to different digests
type Output struct {
	Amount Value
	Owner  PublicKey
	Salt   uint64
}

func NewOutput(amount Value, owner PublicKey, salt uint64) *Output {
	return &Output{
		Amount: amount,
		Owner:  owner,
		Salt:   salt,
	}
}

func OutputFromBytes(data []byte) (*Output, error) {
	if len(data) != OutputLength {
		return nil, errors.New("OutputFromBytes: wrong data length")
	}
	ret := &Output{}
	ret.Amount.Hi = binary.BigEndian.Uint64(data[0:8])
	ret.Amount.Lo = binary.BigEndian.Uint64(data[8:16])
	copy(ret.Owner[:], data[16:16+PublicKeyLength])
	ret.Salt = binary.BigEndian.Uint64(data[16+PublicKeyLength:])
	return ret, nil
}

// Bytes returns the canonical encoding. It is the preimage of the
// output's digest, so it must stay deterministic
func (o *Output) Bytes() []byte {
	var buf [OutputLength]byte
	binary.BigEndian.PutUint64(buf[0:8], o.Amount.Hi)
	binary.BigEndian.PutUint64(buf[8:16], o.Amount.Lo)
	copy(buf[16:16+PublicKeyLength], o.Owner[:])
	binary.BigEndian.PutUint64(buf[16+PublicKeyLength:], o.Salt)
	return buf[:]
}

// Digest is the output's unique ID: blake2b-256 of the canonical bytes
func (o *Output) Digest() Digest {
	return HashData(o.Bytes())
}

func (o *Output) String() string {
	return fmt.Sprintf("output(%s, owner %s, salt %d)", o.Amount.String(), o.Owner.String(), o.Salt)
}
