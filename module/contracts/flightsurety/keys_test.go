package flightsurety

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "test test test test test test test test test test test junk"

var (
	testAccount0 = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testAccount1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func TestNewKeyringFromMnemonic(t *testing.T) {
	t.Run("derives accounts in order", func(t *testing.T) {
		keys, err := NewKeyringFromMnemonic(testMnemonic, 0, 2)
		require.NoError(t, err)
		require.Equal(t, 2, keys.Len())
		assert.Equal(t, []common.Address{testAccount0, testAccount1}, keys.Accounts())

		for _, account := range keys.Accounts() {
			key, ok := keys.Key(account)
			require.True(t, ok)
			assert.Equal(t, account, crypto.PubkeyToAddress(key.PublicKey))
		}
	})

	t.Run("starts at the first account", func(t *testing.T) {
		keys, err := NewKeyringFromMnemonic(testMnemonic, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, []common.Address{testAccount1}, keys.Accounts())
	})

	t.Run("invalid mnemonic", func(t *testing.T) {
		_, err := NewKeyringFromMnemonic("not a mnemonic", 0, 1)
		assert.Error(t, err)
	})
}

func TestNewKeyringFromHex(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	encoded := common.Bytes2Hex(crypto.FromECDSA(key))
	account := crypto.PubkeyToAddress(key.PublicKey)

	t.Run("with and without prefix", func(t *testing.T) {
		keys, err := NewKeyringFromHex([]string{encoded, "0x" + encoded})
		require.NoError(t, err)
		assert.Equal(t, []common.Address{account, account}, keys.Accounts())

		stored, ok := keys.Key(account)
		require.True(t, ok)
		assert.Equal(t, key.D, stored.D)
	})

	t.Run("unknown account", func(t *testing.T) {
		keys, err := NewKeyringFromHex([]string{encoded})
		require.NoError(t, err)
		_, ok := keys.Key(testAccount0)
		assert.False(t, ok)
	})

	t.Run("malformed key", func(t *testing.T) {
		_, err := NewKeyringFromHex([]string{"zz"})
		assert.Error(t, err)
	})
}
