package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
)

// RegisterWallet adds the wallet for the public key to the registry. An
// existing wallet at the same address is replaced.
func (s *State) RegisterWallet(publicKeyHex string, displayName string) (database.Wallet, error) {
	wallet, err := database.NewWallet(publicKeyHex, displayName)
	if err != nil {
		return database.Wallet{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.wallets[wallet.Address] = wallet
	s.evHandler("state: RegisterWallet: address[%s]: name[%s]", wallet.Address, wallet.DisplayName)

	return wallet, nil
}

// CreateWallet generates a new key pair and registers its wallet. The private
// key is returned in hex and is not kept by the ledger.
func (s *State) CreateWallet(displayName string) (database.Wallet, string, error) {
	privateKey, err := signature.GenerateKey()
	if err != nil {
		return database.Wallet{}, "", err
	}

	wallet, err := s.RegisterWallet(signature.ExportPublicKey(&privateKey.PublicKey), displayName)
	if err != nil {
		return database.Wallet{}, "", err
	}

	return wallet, signature.ExportPrivateKey(privateKey), nil
}
