// Package database handles the data model of the ledger: transactions,
// wallets and blocks, plus the proof of work needed to seal a block.
package database

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrInvalidBlock is wrapped by every failure reported from Validate.
var ErrInvalidBlock = errors.New("invalid block")

// hashNibbles is the number of hex characters in a block hash.
const hashNibbles = 64

// =============================================================================

// Block represents a group of transactions batched together.
type Block struct {
	Index           uint64        `json:"index"`             // Position of the block in the chain.
	PreviousHash    string        `json:"previous_hash"`     // Hash of the previous block in the chain.
	Transactions    []Tx          `json:"transactions"`      // Coinbase first, then the mempool snapshot.
	Nonce           uint64        `json:"nonce"`             // Value identified to solve the hash solution.
	Hash            string        `json:"hash"`              // Hash of the block once mined.
	Difficulty      int           `json:"difficulty"`        // Number of leading 0's needed to solve the hash solution.
	SignerPublicKey string        `json:"signer_public_key"` // Public key of the miner who signed the block.
	Signature       hexutil.Bytes `json:"signature"`         // Signature over the canonical block payload.
}

// NewBlock constructs a block that still needs to be mined and signed.
func NewBlock(index uint64, previousHash string, trans []Tx) Block {
	txs := make([]Tx, len(trans))
	copy(txs, trans)

	return Block{
		Index:        index,
		PreviousHash: previousHash,
		Transactions: txs,
	}
}

// NewGenesisBlock constructs the first block of the chain signed by the
// specified key. The genesis block is never mined.
func NewGenesisBlock(privateKey *ecdsa.PrivateKey) (Block, error) {
	b := NewBlock(0, "", nil)
	b.Hash = b.ComputeHash()

	if err := b.Sign(privateKey); err != nil {
		return Block{}, err
	}

	return b, nil
}

// blockPayload represents the fields covered by the block hash and
// the block signature.
type blockPayload struct {
	Index        uint64 `json:"index"`
	PreviousHash string `json:"previous_hash"`
	Transactions []Tx   `json:"transactions"`
	Nonce        uint64 `json:"nonce"`
}

// payload returns the canonical block payload.
func (b Block) payload() blockPayload {
	txs := b.Transactions
	if txs == nil {
		txs = []Tx{}
	}

	return blockPayload{
		Index:        b.Index,
		PreviousHash: b.PreviousHash,
		Transactions: txs,
		Nonce:        b.Nonce,
	}
}

// CanonicalPayload returns the bytes the miner signs.
func (b Block) CanonicalPayload() ([]byte, error) {
	return json.Marshal(b.payload())
}

// ComputeHash returns the hash for the block's index, previous hash,
// transactions and nonce. The signature fields are not covered since they
// are applied after mining.
func (b Block) ComputeHash() string {
	return signature.Hash(b.payload())
}

// Sign binds the miner's identity to the mined block.
func (b *Block) Sign(privateKey *ecdsa.PrivateKey) error {
	if privateKey == nil {
		return fmt.Errorf("%w: missing private key", signature.ErrSigning)
	}

	data, err := b.CanonicalPayload()
	if err != nil {
		return fmt.Errorf("%w: %w", signature.ErrSigning, err)
	}

	sig, err := signature.Sign(data, privateKey)
	if err != nil {
		return err
	}

	b.SignerPublicKey = signature.ExportPublicKey(&privateKey.PublicKey)
	b.Signature = sig

	return nil
}

// Verify checks the block signature against the signer's public key. Any
// malformed key or signature reports false.
func (b Block) Verify() bool {
	publicKey, err := signature.ImportPublicKey(b.SignerPublicKey)
	if err != nil {
		return false
	}

	data, err := b.CanonicalPayload()
	if err != nil {
		return false
	}

	return signature.Verify(data, b.Signature, publicKey)
}

// Validate takes the previous block in the chain and checks this block is
// linked to it, its hash is correct and solved, and its signature verifies.
func (b Block) Validate(prev Block, evHandler func(v string, args ...any)) error {
	evHandler("database: Validate: blk[%d]: check: block number is the next number", b.Index)

	if b.Index != prev.Index+1 {
		return fmt.Errorf("%w: this block is not the next number, got %d, exp %d", ErrInvalidBlock, b.Index, prev.Index+1)
	}

	evHandler("database: Validate: blk[%d]: check: previous hash does match previous block", b.Index)

	if b.PreviousHash != prev.Hash {
		return fmt.Errorf("%w: previous block hash doesn't match, got %s, exp %s", ErrInvalidBlock, b.PreviousHash, prev.Hash)
	}

	evHandler("database: Validate: blk[%d]: check: stored hash matches recomputed hash", b.Index)

	if hash := b.ComputeHash(); b.Hash != hash {
		return fmt.Errorf("%w: stored hash doesn't match, got %s, exp %s", ErrInvalidBlock, b.Hash, hash)
	}

	evHandler("database: Validate: blk[%d]: check: block hash has been solved", b.Index)

	if !HashSatisfiesDifficulty(b.Hash, b.Difficulty) {
		return fmt.Errorf("%w: %s doesn't satisfy difficulty %d", ErrInvalidBlock, b.Hash, b.Difficulty)
	}

	evHandler("database: Validate: blk[%d]: check: block signature is valid", b.Index)

	if !b.Verify() {
		return fmt.Errorf("%w: signature doesn't verify against signer key", ErrInvalidBlock)
	}

	return nil
}

// =============================================================================

// HashSatisfiesDifficulty checks the hash to make sure it complies with the
// POW rules. We need to match a difficulty number of leading 0's.
func HashSatisfiesDifficulty(hash string, difficulty int) bool {
	hash = strings.TrimPrefix(hash, "0x")

	if len(hash) != hashNibbles || difficulty < 0 || difficulty > hashNibbles {
		return false
	}

	return hash[:difficulty] == strings.Repeat("0", difficulty)
}
