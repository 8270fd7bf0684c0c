package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/shopspring/decimal"
)

// Demo describes what DemoSetup put into the ledger.
type Demo struct {
	Sender      database.Wallet `json:"sender"`
	SenderKey   string          `json:"sender_key"`
	Receiver    database.Wallet `json:"receiver"`
	ReceiverKey string          `json:"receiver_key"`
	Tx          database.Tx     `json:"tx"`
}

// DemoSetup creates two wallets and submits a signed payment between them
// so a new ledger has something to mine.
func (s *State) DemoSetup() (Demo, error) {
	sender, senderKey, err := s.CreateWallet("Ivan")
	if err != nil {
		return Demo{}, err
	}

	receiver, receiverKey, err := s.CreateWallet("Taras")
	if err != nil {
		return Demo{}, err
	}

	privateKey, err := signature.ImportPrivateKey(senderKey)
	if err != nil {
		return Demo{}, err
	}

	tx := database.NewTx(sender.Address, receiver.Address, decimal.NewFromInt(10), decimal.RequireFromString("0.5"), "Payment for services")
	tx, err = tx.Sign(privateKey)
	if err != nil {
		return Demo{}, err
	}

	if err := s.SubmitTransaction(tx); err != nil {
		return Demo{}, err
	}

	demo := Demo{
		Sender:      sender,
		SenderKey:   senderKey,
		Receiver:    receiver,
		ReceiverKey: receiverKey,
		Tx:          tx,
	}

	return demo, nil
}
