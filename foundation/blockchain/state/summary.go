package state

// Summary is a point in time view of the ledger. It is refreshed after every
// write and can be read without waiting on a block that is being mined.
type Summary struct {
	Blocks       int
	LatestHash   string
	Uncommitted  int
	Difficulty   int
	Valid        bool
	InvalidIndex int
}

// Summary returns the latest snapshot of the ledger without taking the
// ledger lock.
func (s *State) Summary() Summary {
	return *s.summary.Load()
}

// refreshSummary stores a new snapshot. The chain is only walked again when
// validate is true, otherwise the previous validation result is carried.
// The caller must hold the write lock.
func (s *State) refreshSummary(validate bool) {
	sum := Summary{
		Blocks:      len(s.chain),
		LatestHash:  s.chain[len(s.chain)-1].Hash,
		Uncommitted: s.mempool.Count(),
		Difficulty:  s.difficulty,
		Valid:       true,
	}

	prev := s.summary.Load()
	switch {
	case !validate && prev != nil:
		sum.Valid = prev.Valid
		sum.InvalidIndex = prev.InvalidIndex

	default:
		if index, invalid := s.firstInvalidIndex(); invalid {
			sum.Valid = false
			sum.InvalidIndex = index
		}
	}

	s.summary.Store(&sum)
}
