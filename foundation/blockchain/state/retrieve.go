package state

import (
	"sort"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveDifficulty returns the difficulty used for the next block.
func (s *State) RetrieveDifficulty() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.difficulty
}

// RetrieveChain returns a copy of every block in the chain.
func (s *State) RetrieveChain() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := make([]database.Block, len(s.chain))
	for i, block := range s.chain {
		blocks[i] = copyBlock(block)
	}

	return blocks
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyBlock(s.chain[len(s.chain)-1])
}

// RetrieveMempool returns a copy of the mempool.
func (s *State) RetrieveMempool() []database.Tx {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Copy()
}

// RetrieveWallets returns a copy of the registered wallets sorted by
// display name and then address.
func (s *State) RetrieveWallets() []database.Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallets := make([]database.Wallet, 0, len(s.wallets))
	for _, wallet := range s.wallets {
		wallets = append(wallets, wallet)
	}

	sort.Slice(wallets, func(i, j int) bool {
		if wallets[i].DisplayName != wallets[j].DisplayName {
			return wallets[i].DisplayName < wallets[j].DisplayName
		}
		return wallets[i].Address < wallets[j].Address
	})

	return wallets
}

// BootstrapKeys returns the hex encoded public and private key the ledger
// used to sign the genesis block. This is exposed for demos only.
func (s *State) BootstrapKeys() (publicKey string, privateKey string) {
	return signature.ExportPublicKey(&s.bootstrapKey.PublicKey), signature.ExportPrivateKey(s.bootstrapKey)
}

// =============================================================================

// copyBlock returns a block that shares no memory with the chain.
func copyBlock(block database.Block) database.Block {
	trans := make([]database.Tx, len(block.Transactions))
	for i, tx := range block.Transactions {
		tx.Signature = append([]byte(nil), tx.Signature...)
		trans[i] = tx
	}

	block.Transactions = trans
	block.Signature = append([]byte(nil), block.Signature...)

	return block
}
