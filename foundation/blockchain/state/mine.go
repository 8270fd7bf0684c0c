package state

import (
	"context"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/shopspring/decimal"
)

// MinePending packages the mining reward and every transaction in the mempool
// into a new block, solves the POW puzzle, signs the block with the miner's
// key and appends it to the chain. The whole sequence holds the write lock so
// no transaction can be submitted while the mempool snapshot is being mined.
//
// If ctx is cancelled the candidate block is discarded, ctx.Err() is returned
// and neither the chain nor the mempool is changed.
func (s *State) MinePending(ctx context.Context, minerPrivateKey string) (database.Block, error) {
	privateKey, err := signature.ImportPrivateKey(minerPrivateKey)
	if err != nil {
		return database.Block{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MinePending: MINING: resolve miner wallet")

	// The miner must be a registered wallet holding the same public key.
	minerAddress := signature.Address(&privateKey.PublicKey)
	wallet, exists := s.wallets[minerAddress]
	if !exists || wallet.PublicKey != signature.ExportPublicKey(&privateKey.PublicKey) {
		return database.Block{}, fmt.Errorf("%w: %s", ErrUnknownMiner, minerAddress)
	}

	s.evHandler("state: MinePending: MINING: snapshot mempool")

	// The miner is paid the fixed reward plus every fee in the snapshot.
	pending := s.mempool.Copy()
	totalFee := decimal.Zero
	for _, tx := range pending {
		totalFee = totalFee.Add(tx.Fee)
	}

	trans := make([]database.Tx, 0, len(pending)+1)
	trans = append(trans, database.NewCoinbaseTx(minerAddress, s.genesis.MiningReward.Add(totalFee)))
	trans = append(trans, pending...)

	s.evHandler("state: MinePending: MINING: perform POW: txs[%d]: difficulty[%d]", len(trans), s.difficulty)

	// Attempt to create a new block by solving the POW puzzle. This can be cancelled.
	latest := s.chain[len(s.chain)-1]
	block, err := database.POW(ctx, database.POWArgs{
		Index:        uint64(len(s.chain)),
		PreviousHash: latest.Hash,
		Difficulty:   s.difficulty,
		Trans:        trans,
		EvHandler:    s.evHandler,
	})
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MinePending: MINING: sign block")

	if err := block.Sign(privateKey); err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MinePending: MINING: append block[%d] and clear mempool", block.Index)

	s.chain = append(s.chain, block)
	s.mempool.Truncate()
	s.refreshSummary(true)

	return copyBlock(block), nil
}
