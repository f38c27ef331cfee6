// Package ledger defines the shared data model of the UTXO ledger core:
// amounts, digests, outputs, inputs, transactions and per-output lock
// status, together with their canonical byte encodings. The digest of an
// output's canonical bytes is its identity everywhere in the system.
package ledger

import (
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"lukechampine.com/uint128"
)

const (
	DigestLength    = 32
	PublicKeyLength = ed25519.PublicKeySize
	SignatureLength = ed25519.SignatureSize
)

type (
	// Value is an unsigned 128 bit amount
	Value = uint128.Uint128

	// Digest is the blake2b-256 hash of an output's canonical bytes.
	// It is the output's unique ID and its storage key
	Digest [DigestLength]byte

	// PublicKey is the ed25519 public key required to sign for an output
	PublicKey [PublicKeyLength]byte

	Signature [SignatureLength]byte

	// BlockHeight is passed explicitly into every entrypoint which needs
	// the notion of 'now'. There is no ambient chain state in this package
	BlockHeight uint64
)

func NewValue(v uint64) Value {
	return uint128.From64(v)
}

// AddValue is checked addition; ok == false on 128 bit overflow
func AddValue(a, b Value) (ret Value, ok bool) {
	ret = a.AddWrap(b)
	return ret, ret.Cmp(a) >= 0
}

// ValueBytes is the canonical 16-byte big-endian encoding of an amount
func ValueBytes(v Value) []byte {
	ret := make([]byte, 16)
	binary.BigEndian.PutUint64(ret[0:8], v.Hi)
	binary.BigEndian.PutUint64(ret[8:16], v.Lo)
	return ret
}

func ValueFromBytes(data []byte) (ret Value, err error) {
	if len(data) != 16 {
		err = errors.New("ValueFromBytes: wrong data length")
		return
	}
	ret.Hi = binary.BigEndian.Uint64(data[0:8])
	ret.Lo = binary.BigEndian.Uint64(data[8:16])
	return
}

func HashData(data []byte) Digest {
	return blake2b.Sum256(data)
}

func DigestFromBytes(data []byte) (ret Digest, err error) {
	if len(data) != DigestLength {
		err = errors.New("DigestFromBytes: wrong data length")
		return
	}
	copy(ret[:], data)
	return
}

func (d Digest) Bytes() []byte {
	return d[:]
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

func PublicKeyFromBytes(data []byte) (ret PublicKey, err error) {
	if len(data) != PublicKeyLength {
		err = errors.New("PublicKeyFromBytes: wrong data length")
		return
	}
	copy(ret[:], data)
	return
}

func PublicKeyFromED25519(pubKey ed25519.PublicKey) (ret PublicKey) {
	copy(ret[:], pubKey)
	return
}

func (pk PublicKey) Bytes() []byte {
	return pk[:]
}

func (pk PublicKey) String() string {
	return hex.EncodeToString(pk[:])
}
