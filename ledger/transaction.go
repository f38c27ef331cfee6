package ledger

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

const inputLength = DigestLength + SignatureLength

type (
	// Input consumes exactly one existing output. The signature is taken
	// over the input's unsigned bytes and must verify against the
	// referenced output's owner key
	Input struct {
		ParentDigest Digest
		Signature    Signature
	}

	// Transaction is the unit of atomic ledger change. The verifier, not
	// the type, enforces that parent digests and produced output digests
	// are distinct within one transaction
	Transaction struct {
		Inputs  []Input
		Outputs []Output
	}
)

// NewInput signs for the referenced output with the supplied private key
func NewInput(parent Digest, privKey ed25519.PrivateKey) Input {
	ret := Input{ParentDigest: parent}
	copy(ret.Signature[:], ed25519.Sign(privKey, ret.UnsignedBytes()))
	return ret
}

// UnsignedBytes is the message under the input's signature: the input's
// canonical bytes minus the signature field
func (in *Input) UnsignedBytes() []byte {
	return in.ParentDigest.Bytes()
}

// VerifySignature checks the input's signature against the owner key of
// the output it consumes
func (in *Input) VerifySignature(owner PublicKey) bool {
	return ed25519.Verify(owner.Bytes(), in.UnsignedBytes(), in.Signature[:])
}

func (tx *Transaction) String() string {
	return fmt.Sprintf("tx(%d inputs, %d outputs)", len(tx.Inputs), len(tx.Outputs))
}

// Bytes encodes the transaction for transport and event notification:
// uint16 input count, fixed-size inputs, uint16 output count, fixed-size
// outputs, all big-endian
func (tx *Transaction) Bytes() []byte {
	ret := make([]byte, 0, 4+len(tx.Inputs)*inputLength+len(tx.Outputs)*OutputLength)
	var n [2]byte

	binary.BigEndian.PutUint16(n[:], uint16(len(tx.Inputs)))
	ret = append(ret, n[:]...)
	for i := range tx.Inputs {
		ret = append(ret, tx.Inputs[i].ParentDigest.Bytes()...)
		ret = append(ret, tx.Inputs[i].Signature[:]...)
	}
	binary.BigEndian.PutUint16(n[:], uint16(len(tx.Outputs)))
	ret = append(ret, n[:]...)
	for i := range tx.Outputs {
		ret = append(ret, tx.Outputs[i].Bytes()...)
	}
	return ret
}

func TransactionFromBytes(data []byte) (*Transaction, error) {
	if len(data) < 2 {
		return nil, errors.New("TransactionFromBytes: data too short")
	}
	numInputs := int(binary.BigEndian.Uint16(data[0:2]))
	pos := 2
	if len(data) < pos+numInputs*inputLength+2 {
		return nil, errors.New("TransactionFromBytes: data too short")
	}
	ret := &Transaction{
		Inputs: make([]Input, numInputs),
	}
	for i := 0; i < numInputs; i++ {
		copy(ret.Inputs[i].ParentDigest[:], data[pos:pos+DigestLength])
		copy(ret.Inputs[i].Signature[:], data[pos+DigestLength:pos+inputLength])
		pos += inputLength
	}
	numOutputs := int(binary.BigEndian.Uint16(data[pos : pos+2]))
	pos += 2
	if len(data) != pos+numOutputs*OutputLength {
		return nil, errors.New("TransactionFromBytes: wrong data length")
	}
	ret.Outputs = make([]Output, numOutputs)
	for i := 0; i < numOutputs; i++ {
		out, err := OutputFromBytes(data[pos : pos+OutputLength])
		if err != nil {
			return nil, err
		}
		ret.Outputs[i] = *out
		pos += OutputLength
	}
	return ret, nil
}
