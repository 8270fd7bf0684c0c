// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"crypto/ecdsa"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
)

// The range of difficulties a caller can select.
const (
	MinDifficulty = 1
	MaxDifficulty = 10
)

// Set of error variables for the ledger's business rules.
var (
	ErrUnknownSender    = errors.New("unknown sender")
	ErrInvalidSignature = errors.New("invalid transaction signature")
	ErrUnknownMiner     = errors.New("mining key doesn't match a registered wallet")
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis      genesis.Genesis
	BootstrapKey *ecdsa.PrivateKey
	EvHandler    EventHandler
}

// State manages the chain, the mempool and the wallet registry. All writes,
// including the full mining sequence, are serialized behind mu.
type State struct {
	mu      sync.RWMutex
	summary atomic.Pointer[Summary]

	evHandler    EventHandler
	genesis      genesis.Genesis
	bootstrapKey *ecdsa.PrivateKey
	difficulty   int

	chain   []database.Block
	mempool *mempool.Mempool
	wallets map[string]database.Wallet
}

// New constructs a new ledger with a signed genesis block. When no bootstrap
// key is provided a new one is generated.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// The ledger signs the genesis block with its own key.
	bootstrapKey := cfg.BootstrapKey
	if bootstrapKey == nil {
		var err error
		bootstrapKey, err = signature.GenerateKey()
		if err != nil {
			return nil, err
		}
	}

	genesisBlock, err := database.NewGenesisBlock(bootstrapKey)
	if err != nil {
		return nil, err
	}

	ev("state: New: genesis block[%s]", genesisBlock.Hash)

	state := State{
		evHandler:    ev,
		genesis:      cfg.Genesis,
		bootstrapKey: bootstrapKey,
		difficulty:   clampDifficulty(cfg.Genesis.Difficulty),
		chain:        []database.Block{genesisBlock},
		mempool:      mempool.New(),
		wallets:      make(map[string]database.Wallet),
	}

	state.refreshSummary(true)

	return &state, nil
}

// SetDifficulty changes the difficulty used for the next mined block. The
// value is clamped to the allowed range and the applied value is returned.
func (s *State) SetDifficulty(difficulty int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.difficulty = clampDifficulty(difficulty)
	s.evHandler("state: SetDifficulty: difficulty[%d]", s.difficulty)
	s.refreshSummary(false)

	return s.difficulty
}

// =============================================================================

// clampDifficulty keeps the difficulty inside the allowed range.
func clampDifficulty(difficulty int) int {
	switch {
	case difficulty < MinDifficulty:
		return MinDifficulty
	case difficulty > MaxDifficulty:
		return MaxDifficulty
	}

	return difficulty
}
