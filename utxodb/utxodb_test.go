package utxodb

import (
	"testing"

	"github.com/dustnet/utxoledger/ledger"
	"github.com/stretchr/testify/require"
)

func TestUTXODB(t *testing.T) {
	t.Run("genesis", func(t *testing.T) {
		u := NewUTXODB()
		_, genesisPub := u.GenesisKeys()
		require.EqualValues(t, u.Supply(), u.Ledger().Balance(genesisPub))
		require.EqualValues(t, 1, u.Ledger().NumUTXOs(genesisPub))
		require.True(t, u.Ledger().DustTotal().IsZero())
	})
	t.Run("faucet", func(t *testing.T) {
		u := NewUTXODB()
		_, genesisPub := u.GenesisKeys()
		_, addr := u.GenerateKeys(1)

		require.NoError(t, u.TokensFromFaucet(addr, 10000))
		require.EqualValues(t, ledger.NewValue(10000), u.Ledger().Balance(addr))
		require.EqualValues(t, 1, u.Ledger().NumUTXOs(addr))
		require.EqualValues(t, u.Supply().Sub64(10000), u.Ledger().Balance(genesisPub))
	})
	t.Run("simple transfer", func(t *testing.T) {
		u := NewUTXODB()
		priv1, addr1 := u.GenerateKeys(1)
		_, addr2 := u.GenerateKeys(2)
		require.NoError(t, u.TokensFromFaucet(addr1, 10000))

		tx, err := u.MakeTransferTransaction(priv1, addr2, 1000)
		require.NoError(t, err)
		require.NoError(t, u.Execute(tx))
		require.EqualValues(t, ledger.NewValue(1000), u.Ledger().Balance(addr2))
		require.EqualValues(t, ledger.NewValue(9000), u.Ledger().Balance(addr1))
		require.True(t, u.Ledger().DustTotal().IsZero())
	})
	t.Run("not enough tokens", func(t *testing.T) {
		u := NewUTXODB()
		priv1, addr1 := u.GenerateKeys(1)
		_, addr2 := u.GenerateKeys(2)
		require.NoError(t, u.TokensFromFaucet(addr1, 500))

		_, err := u.MakeTransferTransaction(priv1, addr2, 1000)
		require.Error(t, err)
	})
	t.Run("deterministic keys", func(t *testing.T) {
		u1 := NewUTXODB()
		u2 := NewUTXODB()
		_, pub1 := u1.GenerateKeys(42)
		_, pub2 := u2.GenerateKeys(42)
		require.EqualValues(t, pub1, pub2)
	})
	t.Run("finalize advances height", func(t *testing.T) {
		u := NewUTXODB()
		_, auth := u.GenerateKeys(100)
		require.EqualValues(t, ledger.BlockHeight(1), u.Height())
		require.NoError(t, u.FinalizeBlock([]ledger.PublicKey{auth}))
		require.EqualValues(t, ledger.BlockHeight(2), u.Height())
	})
}
