package state

import "github.com/ardanlabs/powledger/foundation/blockchain/database"

// CorruptBlock edits a block in place the way an outside edit of the
// chain would, so validation can be exercised.
func (s *State) CorruptBlock(index int, fn func(b *database.Block)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.chain[index])
	s.refreshSummary(true)
}
