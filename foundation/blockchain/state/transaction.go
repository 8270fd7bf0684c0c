package state

import (
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// SubmitTransaction accepts a signed transaction from a wallet for inclusion
// in the next block. The signature must verify against the public key
// registered for the from address. Balances are not checked.
func (s *State) SubmitTransaction(tx database.Tx) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, exists := s.wallets[database.ToAddress(tx.FromAddress)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownSender, tx.FromAddress)
	}

	publicKey, err := wallet.ECDSAPublicKey()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	if !tx.VerifySignature(publicKey) {
		return fmt.Errorf("%w: from %s", ErrInvalidSignature, tx.FromAddress)
	}

	n := s.mempool.Add(tx)
	s.evHandler("state: SubmitTransaction: tx[%s]: mempool[%d]", tx, n)
	s.refreshSummary(false)

	return nil
}
