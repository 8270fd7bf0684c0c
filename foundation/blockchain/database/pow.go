package database

import (
	"context"
)

// POWArgs represents the set of arguments required to run POW.
type POWArgs struct {
	Index        uint64
	PreviousHash string
	Difficulty   int
	Trans        []Tx
	EvHandler    func(v string, args ...any)
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle. The block still needs to be signed.
func POW(ctx context.Context, args POWArgs) (Block, error) {
	ev := args.EvHandler
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	nb := NewBlock(args.Index, args.PreviousHash, args.Trans)

	if err := nb.Mine(ctx, args.Difficulty, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// Mine does the work of mining to find a valid hash for the block at the
// specified difficulty. Pointer semantics are being used since a nonce is
// being discovered. The search always starts at nonce 0 and increments by 1,
// so the same block and difficulty always produce the same nonce and hash.
func (b *Block) Mine(ctx context.Context, difficulty int, ev func(v string, args ...any)) error {
	ev("database: Mine: MINING: started: blk[%d]: difficulty[%d]", b.Index, difficulty)
	defer ev("database: Mine: MINING: completed: blk[%d]", b.Index)

	// Log the transactions that are a part of this potential block.
	for _, tx := range b.Transactions {
		ev("database: Mine: MINING: tx[%s]", tx)
	}

	b.Nonce = 0
	b.Difficulty = difficulty

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Mine: MINING: attempts[%d]", attempts)
		}

		// Did we get cancelled trying to solve the problem.
		if ctx.Err() != nil {
			ev("database: Mine: MINING: CANCELLED")
			return ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle.
		hash := b.ComputeHash()
		if !HashSatisfiesDifficulty(hash, difficulty) {
			b.Nonce++
			continue
		}

		b.Hash = hash

		ev("database: Mine: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.PreviousHash, hash)
		ev("database: Mine: MINING: attempts[%d]", attempts)

		return nil
	}
}
