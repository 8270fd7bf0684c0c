package state

import (
	"strconv"
	"strings"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// IsValid walks the chain and reports whether every block is linked to its
// parent, carries its recomputed hash, solves its difficulty and has a
// signature that verifies.
func (s *State) IsValid() bool {
	_, invalid := s.FirstInvalidIndex()
	return !invalid
}

// FirstInvalidIndex walks the chain and returns the index of the first block
// that fails validation. The bool is false when the whole chain is valid.
func (s *State) FirstInvalidIndex() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.firstInvalidIndex()
}

// firstInvalidIndex does the walk for FirstInvalidIndex. The caller must hold
// the lock.
func (s *State) firstInvalidIndex() (int, bool) {
	noop := func(v string, args ...any) {}

	for i := 1; i < len(s.chain); i++ {
		if err := s.chain[i].Validate(s.chain[i-1], noop); err != nil {
			s.evHandler("state: FirstInvalidIndex: blk[%d]: %s", i, err)
			return i, true
		}
	}

	return 0, false
}

// FindBlock looks up a block by index when the query is an integer,
// otherwise by a case-insensitive match on the block hash.
func (s *State) FindBlock(query string) (database.Block, bool) {
	query = strings.TrimSpace(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if index, err := strconv.Atoi(query); err == nil {
		for _, block := range s.chain {
			if index >= 0 && block.Index == uint64(index) {
				return copyBlock(block), true
			}
		}
		return database.Block{}, false
	}

	for _, block := range s.chain {
		if strings.EqualFold(block.Hash, query) {
			return copyBlock(block), true
		}
	}

	return database.Block{}, false
}
