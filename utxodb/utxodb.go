// Package utxodb is an in-memory ledger with a faucet and deterministic
// keys. It drives the full dispatch surface and is intended for testing
// and tooling, not for production use.
package utxodb

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/dustnet/utxoledger/ledger"
	"github.com/dustnet/utxoledger/state"
	"github.com/lunfardo314/unitrie/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

type UTXODB struct {
	ldg               *state.Ledger
	supply            ledger.Value
	height            ledger.BlockHeight
	saltCounter       uint64
	genesisPrivateKey ed25519.PrivateKey
	genesisPublicKey  ledger.PublicKey
}

const (
	// for determinism
	genesisSeed       = "utxodb genesis seed for testing only"
	deterministicSeed = "1234567890987654321"

	supplyForTesting        = uint64(1_000_000_000_000)
	TokensFromFaucetDefault = uint64(1_000_000)
)

func NewUTXODB(log ...*zap.SugaredLogger) *UTXODB {
	seed := blake2b.Sum256([]byte(genesisSeed))
	genesisPrivateKey := ed25519.NewKeyFromSeed(seed[:])
	genesisPublicKey := ledger.PublicKeyFromED25519(genesisPrivateKey.Public().(ed25519.PublicKey))

	store := common.NewInMemoryKVStore()
	state.MustInitLedgerState(store, []*ledger.Output{
		ledger.NewOutput(ledger.NewValue(supplyForTesting), genesisPublicKey, 0),
	})
	var l *zap.SugaredLogger
	if len(log) > 0 {
		l = log[0]
	}
	return &UTXODB{
		ldg:               state.NewLedger(store, l),
		supply:            ledger.NewValue(supplyForTesting),
		height:            1,
		genesisPrivateKey: genesisPrivateKey,
		genesisPublicKey:  genesisPublicKey,
	}
}

func (u *UTXODB) Ledger() *state.Ledger {
	return u.ldg
}

func (u *UTXODB) Supply() ledger.Value {
	return u.supply
}

func (u *UTXODB) Height() ledger.BlockHeight {
	return u.height
}

func (u *UTXODB) GenesisKeys() (ed25519.PrivateKey, ledger.PublicKey) {
	return u.genesisPrivateKey, u.genesisPublicKey
}

// GenerateKeys makes the deterministic key pair number n
func (u *UTXODB) GenerateKeys(n uint16) (ed25519.PrivateKey, ledger.PublicKey) {
	var u16 [2]byte
	binary.BigEndian.PutUint16(u16[:], n)
	seed := blake2b.Sum256(common.Concat([]byte(deterministicSeed), u16[:]))
	priv := ed25519.NewKeyFromSeed(seed[:])
	return priv, ledger.PublicKeyFromED25519(priv.Public().(ed25519.PublicKey))
}

// Execute runs the transaction with the inherent origin at the current height
func (u *UTXODB) Execute(tx *ledger.Transaction) error {
	return u.ldg.Execute(state.OriginInherent, u.height, tx)
}

// FinalizeBlock redistributes accumulated dust among the authorities and
// advances the chain to the next height
func (u *UTXODB) FinalizeBlock(authorities []ledger.PublicKey) error {
	if err := u.ldg.OnFinalize(u.height, authorities); err != nil {
		return err
	}
	u.height++
	return nil
}

// MakeTransferTransaction builds and signs a transaction moving 'amount'
// from one output owned by the source key to the target key, with change
// back to the source owner
func (u *UTXODB) MakeTransferTransaction(srcKey ed25519.PrivateKey, target ledger.PublicKey, amount uint64) (*ledger.Transaction, error) {
	srcOwner := ledger.PublicKeyFromED25519(srcKey.Public().(ed25519.PublicKey))
	outs := u.ldg.GetUTXOsForOwner(srcOwner)

	transfer := ledger.NewValue(amount)
	for _, o := range outs {
		if o.Output.Amount.Cmp(transfer) < 0 {
			continue
		}
		tx := &ledger.Transaction{
			Inputs:  []ledger.Input{ledger.NewInput(o.Digest, srcKey)},
			Outputs: []ledger.Output{*ledger.NewOutput(transfer, target, u.nextSalt())},
		}
		if change := o.Output.Amount.Sub(transfer); !change.IsZero() {
			tx.Outputs = append(tx.Outputs, *ledger.NewOutput(change, srcOwner, u.nextSalt()))
		}
		return tx, nil
	}
	return nil, errors.Errorf("UTXODB: no single output of %s covers %d", srcOwner.String(), amount)
}

// TokensFromFaucet moves tokens from the genesis supply to the target key
func (u *UTXODB) TokensFromFaucet(target ledger.PublicKey, howMany ...uint64) error {
	amount := TokensFromFaucetDefault
	if len(howMany) > 0 && howMany[0] > 0 {
		amount = howMany[0]
	}
	tx, err := u.MakeTransferTransaction(u.genesisPrivateKey, target, amount)
	if err != nil {
		return errors.Wrap(err, "UTXODB faucet")
	}
	return u.Execute(tx)
}

// nextSalt disambiguates outputs produced by the harness
func (u *UTXODB) nextSalt() uint64 {
	u.saltCounter++
	return u.saltCounter
}
