package flightsurety

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/tyler-smith/go-bip39"
)

// DefaultDerivationPathPrefix is the BIP-44 path for ethereum accounts, without the account index.
const DefaultDerivationPathPrefix = "m/44'/60'/0'/0/"

// Keyring holds the signing keys of the oracle accounts, in derivation order.
type Keyring struct {
	accounts []common.Address
	keys     map[common.Address]*ecdsa.PrivateKey
}

func newKeyring() *Keyring {
	return &Keyring{
		keys: make(map[common.Address]*ecdsa.PrivateKey),
	}
}

// NewKeyringFromMnemonic derives count accounts starting at index first, the way
// development ledgers derive their funded accounts.
func NewKeyringFromMnemonic(mnemonic string, first uint, count uint) (*Keyring, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}

	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("could not create wallet from mnemonic: %w", err)
	}

	k := newKeyring()
	for i := first; i < first+count; i++ {
		path, err := hdwallet.ParseDerivationPath(fmt.Sprintf("%s%d", DefaultDerivationPathPrefix, i))
		if err != nil {
			return nil, fmt.Errorf("could not parse derivation path for account %d: %w", i, err)
		}
		account, err := wallet.Derive(path, false)
		if err != nil {
			return nil, fmt.Errorf("could not derive account %d: %w", i, err)
		}
		key, err := wallet.PrivateKey(account)
		if err != nil {
			return nil, fmt.Errorf("could not get private key of account %d: %w", i, err)
		}
		k.add(account.Address, key)
	}

	return k, nil
}

// NewKeyringFromHex builds a keyring from hex encoded private keys, with or without 0x prefix.
// A key listed twice yields the same account twice.
func NewKeyringFromHex(hexKeys []string) (*Keyring, error) {
	k := newKeyring()
	for i, hexKey := range hexKeys {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
		if err != nil {
			return nil, fmt.Errorf("could not decode private key %d: %w", i, err)
		}
		k.add(crypto.PubkeyToAddress(key.PublicKey), key)
	}
	return k, nil
}

func (k *Keyring) add(account common.Address, key *ecdsa.PrivateKey) {
	k.accounts = append(k.accounts, account)
	if _, ok := k.keys[account]; !ok {
		k.keys[account] = key
	}
}

// Accounts returns the accounts in the order the keys were added.
func (k *Keyring) Accounts() []common.Address {
	accounts := make([]common.Address, len(k.accounts))
	copy(accounts, k.accounts)
	return accounts
}

// Key returns the signing key of the given account.
func (k *Keyring) Key(account common.Address) (*ecdsa.PrivateKey, bool) {
	key, ok := k.keys[account]
	return key, ok
}

// Len returns the number of accounts, duplicates included.
func (k *Keyring) Len() int {
	return len(k.accounts)
}
