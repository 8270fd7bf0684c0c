package public

import (
	"github.com/ardanlabs/powledger/business/sys/validate"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/worker"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

type submitTx struct {
	From      string          `json:"from" validate:"required"`
	To        string          `json:"to" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	Note      string          `json:"note" validate:"max=256"`
	Signature hexutil.Bytes   `json:"signature" validate:"required"`
}

func (m submitTx) Validate() error {
	return validate.Check(m)
}

func (m submitTx) toDBTx() database.Tx {
	tx := database.NewTx(m.From, m.To, m.Amount, m.Fee, m.Note)
	tx.Signature = m.Signature
	return tx
}

type registerWallet struct {
	PublicKey   string `json:"public_key" validate:"required,hexadecimal"`
	DisplayName string `json:"display_name" validate:"required,max=64"`
}

func (m registerWallet) Validate() error {
	return validate.Check(m)
}

type createWallet struct {
	DisplayName string `json:"display_name" validate:"required,max=64"`
}

func (m createWallet) Validate() error {
	return validate.Check(m)
}

type startMining struct {
	PrivateKey string `json:"private_key" validate:"omitempty,hexadecimal"`
}

func (m startMining) Validate() error {
	return validate.Check(m)
}

type setDifficulty struct {
	Difficulty int `json:"difficulty"`
}

// =============================================================================

type tx struct {
	FromAddress string          `json:"from"`
	FromName    string          `json:"from_name"`
	ToAddress   string          `json:"to"`
	ToName      string          `json:"to_name"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	Note        string          `json:"note"`
	Signature   hexutil.Bytes   `json:"signature,omitempty"`
}

type block struct {
	Index           uint64 `json:"index"`
	PreviousHash    string `json:"previous_hash"`
	Hash            string `json:"hash"`
	Nonce           uint64 `json:"nonce"`
	Difficulty      int    `json:"difficulty"`
	SignerPublicKey string `json:"signer_public_key"`
	Signature       string `json:"signature"`
	Transactions    []tx   `json:"transactions"`
}

type wallet struct {
	Address     string `json:"address"`
	PublicKey   string `json:"public_key"`
	DisplayName string `json:"display_name"`
}

type newWallet struct {
	Wallet     wallet `json:"wallet"`
	PrivateKey string `json:"private_key"`
}

type status struct {
	Valid        bool          `json:"valid"`
	InvalidIndex *int          `json:"invalid_index,omitempty"`
	Difficulty   int           `json:"difficulty"`
	Blocks       int           `json:"blocks"`
	LatestHash   string        `json:"latest_hash"`
	Uncommitted  int           `json:"uncommitted"`
	Listeners    int           `json:"listeners"`
	Mining       worker.Status `json:"mining"`
}

type keys struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

type demo struct {
	Sender      newWallet `json:"sender"`
	Receiver    newWallet `json:"receiver"`
	Transaction tx        `json:"transaction"`
}
