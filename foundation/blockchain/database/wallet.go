package database

import (
	"crypto/ecdsa"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/common"
)

// Wallet represents a registered identity that can send transactions
// and receive mining rewards.
type Wallet struct {
	Address     string `json:"address"`
	PublicKey   string `json:"public_key"`
	DisplayName string `json:"display_name"`
}

// NewWallet constructs a wallet from the hex encoded public key. The address
// is derived from the key so the same key always yields the same address.
func NewWallet(publicKeyHex string, displayName string) (Wallet, error) {
	publicKey, err := signature.ImportPublicKey(publicKeyHex)
	if err != nil {
		return Wallet{}, err
	}

	w := Wallet{
		Address:     signature.Address(publicKey),
		PublicKey:   signature.ExportPublicKey(publicKey),
		DisplayName: displayName,
	}

	return w, nil
}

// ECDSAPublicKey converts the stored key material into a usable public key.
func (w Wallet) ECDSAPublicKey() (*ecdsa.PublicKey, error) {
	return signature.ImportPublicKey(w.PublicKey)
}

// ToAddress converts a hex address into its checksummed form so lookups
// don't depend on the caller's casing. Anything that isn't a hex address
// is returned untouched.
func ToAddress(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}

	return common.HexToAddress(address).Hex()
}
