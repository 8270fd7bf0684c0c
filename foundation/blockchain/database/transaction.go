package database

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// CoinbaseAddress marks the from address of a mining reward transaction.
// These transactions are never signed.
const CoinbaseAddress = "COINBASE"

// ErrInvalidAmount is returned when a transaction carries a negative
// amount or fee.
var ErrInvalidAmount = errors.New("invalid transaction amount")

// =============================================================================

// Tx is the transactional information between two parties.
type Tx struct {
	FromAddress string          `json:"from"`                // Address of the wallet sending the value.
	ToAddress   string          `json:"to"`                  // Address of the wallet receiving the value.
	Amount      decimal.Decimal `json:"amount"`              // Monetary value received from this transaction.
	Fee         decimal.Decimal `json:"fee"`                 // Fee offered to the miner that includes this transaction.
	Note        string          `json:"note"`                // Free form text attached by the sender.
	Signature   hexutil.Bytes   `json:"signature,omitempty"` // Signature over the canonical payload, [R|S|V] format.
}

// NewTx constructs a new unsigned transaction.
func NewTx(fromAddress string, toAddress string, amount decimal.Decimal, fee decimal.Decimal, note string) Tx {
	return Tx{
		FromAddress: fromAddress,
		ToAddress:   toAddress,
		Amount:      amount,
		Fee:         fee,
		Note:        note,
	}
}

// NewCoinbaseTx constructs the reward transaction for the miner of a block.
func NewCoinbaseTx(toAddress string, amount decimal.Decimal) Tx {
	return Tx{
		FromAddress: CoinbaseAddress,
		ToAddress:   toAddress,
		Amount:      amount,
		Fee:         decimal.Zero,
	}
}

// CanonicalPayload returns the exact bytes that are signed and verified
// for this transaction. The field order and separator must never change.
func (tx Tx) CanonicalPayload() []byte {
	s := fmt.Sprintf("%s|%s|%s|%s|%s", tx.FromAddress, tx.ToAddress, tx.Amount.String(), tx.Fee.String(), tx.Note)
	return []byte(s)
}

// IsCoinbase reports whether this is a mining reward transaction.
func (tx Tx) IsCoinbase() bool {
	return tx.FromAddress == CoinbaseAddress
}

// Validate checks the amount and fee are not negative.
func (tx Tx) Validate() error {
	if tx.Amount.IsNegative() {
		return fmt.Errorf("%w: amount %s is negative", ErrInvalidAmount, tx.Amount)
	}

	if tx.Fee.IsNegative() {
		return fmt.Errorf("%w: fee %s is negative", ErrInvalidAmount, tx.Fee)
	}

	return nil
}

// Sign uses the specified private key to sign the transaction.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (Tx, error) {
	sig, err := signature.Sign(tx.CanonicalPayload(), privateKey)
	if err != nil {
		return Tx{}, err
	}

	tx.Signature = sig

	return tx, nil
}

// VerifySignature checks the signature against the specified public key.
func (tx Tx) VerifySignature(publicKey *ecdsa.PublicKey) bool {
	return signature.Verify(tx.CanonicalPayload(), tx.Signature, publicKey)
}

// Hash returns a unique string for the signed transaction.
func (tx Tx) Hash() string {
	return signature.Hash(tx)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%s", tx.FromAddress, tx.ToAddress, tx.Amount)
}
