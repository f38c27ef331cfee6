package ledger_test

import (
	"crypto/ed25519"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/dustnet/utxoledger/ledger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestValue(t *testing.T) {
	t.Run("checked add", func(t *testing.T) {
		sum, ok := ledger.AddValue(ledger.NewValue(1337), ledger.NewValue(42))
		require.True(t, ok)
		require.EqualValues(t, ledger.NewValue(1379), sum)
	})
	t.Run("overflow", func(t *testing.T) {
		_, ok := ledger.AddValue(uint128.Max, ledger.NewValue(1))
		require.False(t, ok)

		almostMax := uint128.Max.Sub64(1)
		sum, ok := ledger.AddValue(almostMax, ledger.NewValue(1))
		require.True(t, ok)
		require.EqualValues(t, uint128.Max, sum)
	})
	t.Run("encoding", func(t *testing.T) {
		v := uint128.New(math.MaxUint64, 7)
		vBack, err := ledger.ValueFromBytes(ledger.ValueBytes(v))
		require.NoError(t, err)
		require.EqualValues(t, v, vBack)

		_, err = ledger.ValueFromBytes([]byte{1, 2, 3})
		require.Error(t, err)
	})
}

func TestOutput(t *testing.T) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	pubKey, _, err := ed25519.GenerateKey(rnd)
	require.NoError(t, err)
	owner := ledger.PublicKeyFromED25519(pubKey)

	t.Run("digest determinism", func(t *testing.T) {
		out := ledger.NewOutput(ledger.NewValue(1337), owner, 42)
		require.EqualValues(t, out.Digest(), out.Digest())

		same := ledger.NewOutput(ledger.NewValue(1337), owner, 42)
		require.EqualValues(t, out.Digest(), same.Digest())
	})
	t.Run("salt disambiguates", func(t *testing.T) {
		out1 := ledger.NewOutput(ledger.NewValue(1337), owner, 42)
		out2 := ledger.NewOutput(ledger.NewValue(1337), owner, 43)
		require.NotEqualValues(t, out1.Digest(), out2.Digest())
	})
	t.Run("serialization", func(t *testing.T) {
		out := ledger.NewOutput(uint128.New(1, 2), owner, 42)
		outBack, err := ledger.OutputFromBytes(out.Bytes())
		require.NoError(t, err)
		require.EqualValues(t, out, outBack)
		require.EqualValues(t, out.Digest(), outBack.Digest())

		_, err = ledger.OutputFromBytes(out.Bytes()[1:])
		require.Error(t, err)
	})
}

func TestInputSignature(t *testing.T) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	pubKey, privKey, err := ed25519.GenerateKey(rnd)
	require.NoError(t, err)
	owner := ledger.PublicKeyFromED25519(pubKey)

	parent := ledger.NewOutput(ledger.NewValue(100), owner, 1).Digest()

	t.Run("valid", func(t *testing.T) {
		in := ledger.NewInput(parent, privKey)
		require.True(t, in.VerifySignature(owner))
	})
	t.Run("wrong key", func(t *testing.T) {
		otherPub, _, err := ed25519.GenerateKey(rnd)
		require.NoError(t, err)
		in := ledger.NewInput(parent, privKey)
		require.False(t, in.VerifySignature(ledger.PublicKeyFromED25519(otherPub)))
	})
	t.Run("tampered parent", func(t *testing.T) {
		in := ledger.NewInput(parent, privKey)
		in.ParentDigest[0]++
		require.False(t, in.VerifySignature(owner))
	})
}

func TestTransactionSerialization(t *testing.T) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	pubKey, privKey, err := ed25519.GenerateKey(rnd)
	require.NoError(t, err)
	owner := ledger.PublicKeyFromED25519(pubKey)

	parent := ledger.NewOutput(ledger.NewValue(100), owner, 1).Digest()
	tx := &ledger.Transaction{
		Inputs: []ledger.Input{ledger.NewInput(parent, privKey)},
		Outputs: []ledger.Output{
			*ledger.NewOutput(ledger.NewValue(90), owner, 2),
			*ledger.NewOutput(ledger.NewValue(10), owner, 3),
		},
	}
	txBack, err := ledger.TransactionFromBytes(tx.Bytes())
	require.NoError(t, err)
	require.EqualValues(t, tx, txBack)
	t.Logf("%s: %d bytes", tx.String(), len(tx.Bytes()))

	_, err = ledger.TransactionFromBytes(tx.Bytes()[:len(tx.Bytes())-1])
	require.Error(t, err)
	_, err = ledger.TransactionFromBytes(nil)
	require.Error(t, err)
}

func TestRuleErrors(t *testing.T) {
	err := errors.Wrapf(ledger.ErrOverspend, "produced total %d exceeds consumed total %d", 5, 3)
	require.True(t, errors.Is(err, ledger.ErrOverspend))
	require.False(t, errors.Is(err, ledger.ErrEmptyInputs))
	require.Contains(t, err.Error(), "ErrOverspend")
	require.Contains(t, err.Error(), "exceeds consumed total")
}

func TestLockStatus(t *testing.T) {
	t.Run("indefinite", func(t *testing.T) {
		l := ledger.LockIndefinite()
		require.False(t, l.Spendable(0))
		require.False(t, l.Spendable(math.MaxUint64))

		back, err := ledger.LockStatusFromBytes(l.Bytes())
		require.NoError(t, err)
		require.EqualValues(t, l, back)
	})
	t.Run("until", func(t *testing.T) {
		l := ledger.LockUntil(5)
		require.False(t, l.Spendable(4))
		require.False(t, l.Spendable(5))
		require.True(t, l.Spendable(6))

		back, err := ledger.LockStatusFromBytes(l.Bytes())
		require.NoError(t, err)
		require.EqualValues(t, l, back)
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := ledger.LockStatusFromBytes([]byte{0xff})
		require.Error(t, err)
		_, err = ledger.LockStatusFromBytes(nil)
		require.Error(t, err)
	})
}
