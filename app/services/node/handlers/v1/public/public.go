// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/powledger/business/web/errs"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/blockchain/worker"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/nameservice"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ErrBlockNotFound is returned when a block search has no match.
var ErrBlockNotFound = errors.New("block not found")

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Worker   *worker.Worker
	NS       *nameservice.NameService
	WS       websocket.Upgrader
	Evts     *events.Events
	MinerKey string
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Status returns the health of the chain and the state of mining. It reads
// the ledger summary so it answers while a block is being mined.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	sum := h.State.Summary()

	st := status{
		Valid:       sum.Valid,
		Difficulty:  sum.Difficulty,
		Blocks:      sum.Blocks,
		LatestHash:  sum.LatestHash,
		Uncommitted: sum.Uncommitted,
		Listeners:   h.Evts.Count(),
		Mining:      h.Worker.Status(),
	}

	if !sum.Valid {
		st.InvalidIndex = &sum.InvalidIndex
	}

	return web.Respond(ctx, w, st, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Blocks returns all the blocks and their details.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	names := h.names()

	dbBlocks := h.State.RetrieveChain()

	blocks := make([]block, len(dbBlocks))
	for i, blk := range dbBlocks {
		blocks[i] = toBlock(blk, names)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// SearchBlock finds a block by its index or its hash.
func (h Handlers) SearchBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	query := web.Param(r, "query")

	blk, found := h.State.FindBlock(query)
	if !found {
		return errs.NewTrusted(fmt.Errorf("%w: %s", ErrBlockNotFound, query), http.StatusNotFound)
	}

	return web.Respond(ctx, w, toBlock(blk, h.names()), http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	names := h.names()

	mempool := h.State.RetrieveMempool()

	trans := make([]tx, len(mempool))
	for i, tran := range mempool {
		trans[i] = toTx(tran, names)
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// SubmitTransaction adds a new signed wallet transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req submitTx
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	tran := req.toDBTx()

	h.Log.Infow("submit tran", "traceid", v.TraceID, "from", tran.FromAddress, "to", tran.ToAddress, "amount", tran.Amount, "fee", tran.Fee)
	if err := h.State.SubmitTransaction(tran); err != nil {
		return toRequestError(err)
	}

	resp := struct {
		Status string `json:"status"`
		Hash   string `json:"hash"`
	}{
		Status: "transaction added to mempool",
		Hash:   tran.Hash(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Wallets returns the registered wallets.
func (h Handlers) Wallets(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	dbWallets := h.State.RetrieveWallets()

	wallets := make([]wallet, len(dbWallets))
	for i, dbWallet := range dbWallets {
		wallets[i] = toWallet(dbWallet)
	}

	return web.Respond(ctx, w, wallets, http.StatusOK)
}

// RegisterWallet registers the public key of a wallet owned by the client.
func (h Handlers) RegisterWallet(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req registerWallet
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	dbWallet, err := h.State.RegisterWallet(req.PublicKey, req.DisplayName)
	if err != nil {
		return toRequestError(err)
	}

	return web.Respond(ctx, w, toWallet(dbWallet), http.StatusCreated)
}

// CreateWallet generates a new key pair on behalf of the client and
// registers its wallet. The private key is returned and not kept.
func (h Handlers) CreateWallet(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req createWallet
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	dbWallet, privateKey, err := h.State.CreateWallet(req.DisplayName)
	if err != nil {
		return err
	}

	resp := newWallet{
		Wallet:     toWallet(dbWallet),
		PrivateKey: privateKey,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// StartMining starts mining the mempool in the background. When no private
// key is provided the node's own miner key is used.
func (h Handlers) StartMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req startMining
	if r.ContentLength != 0 {
		if err := web.Decode(r, &req); err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
	}

	privateKey := req.PrivateKey
	if privateKey == "" {
		privateKey = h.MinerKey
	}

	if privateKey == "" {
		return errs.NewTrusted(fmt.Errorf("%w: no miner key configured", signature.ErrKeyFormat), http.StatusBadRequest)
	}

	// Reject bad key material now rather than in the background.
	if _, err := signature.ImportPrivateKey(privateKey); err != nil {
		return toRequestError(err)
	}

	if err := h.Worker.StartMining(privateKey); err != nil {
		return toRequestError(err)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining started",
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// CancelMining cancels the running mining operation.
func (h Handlers) CancelMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.Worker.CancelMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining cancel signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SetDifficulty changes the difficulty for the next mined block.
func (h Handlers) SetDifficulty(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req setDifficulty
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Difficulty int `json:"difficulty"`
	}{
		Difficulty: h.State.SetDifficulty(req.Difficulty),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BootstrapKeys returns the key pair that signed the genesis block. This
// is exposed for demos only.
func (h Handlers) BootstrapKeys(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	publicKey, privateKey := h.State.BootstrapKeys()

	resp := keys{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// DemoSetup creates two demo wallets and a pending payment between them.
func (h Handlers) DemoSetup(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	d, err := h.State.DemoSetup()
	if err != nil {
		return err
	}

	names := h.names()

	resp := demo{
		Sender:      newWallet{Wallet: toWallet(d.Sender), PrivateKey: d.SenderKey},
		Receiver:    newWallet{Wallet: toWallet(d.Receiver), PrivateKey: d.ReceiverKey},
		Transaction: toTx(d.Tx, names),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// =============================================================================

// names maps addresses to the display names of registered wallets.
func (h Handlers) names() func(address string) string {
	registry := make(map[string]string)
	for _, w := range h.State.RetrieveWallets() {
		registry[w.Address] = w.DisplayName
	}

	return func(address string) string {
		if name, exists := registry[database.ToAddress(address)]; exists {
			return name
		}
		if h.NS != nil {
			return h.NS.Lookup(address)
		}
		return address
	}
}

// toRequestError converts the ledger's business errors into errors that are
// safe to return to the client.
func toRequestError(err error) error {
	switch {
	case errors.Is(err, worker.ErrMiningInProgress):
		return errs.NewTrusted(err, http.StatusConflict)

	case errors.Is(err, signature.ErrKeyFormat),
		errors.Is(err, state.ErrUnknownSender),
		errors.Is(err, state.ErrInvalidSignature),
		errors.Is(err, state.ErrUnknownMiner),
		errors.Is(err, database.ErrInvalidAmount):
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return err
}

func toTx(tran database.Tx, names func(string) string) tx {
	return tx{
		FromAddress: tran.FromAddress,
		FromName:    names(tran.FromAddress),
		ToAddress:   tran.ToAddress,
		ToName:      names(tran.ToAddress),
		Amount:      tran.Amount,
		Fee:         tran.Fee,
		Note:        tran.Note,
		Signature:   tran.Signature,
	}
}

func toBlock(blk database.Block, names func(string) string) block {
	trans := make([]tx, len(blk.Transactions))
	for i, tran := range blk.Transactions {
		trans[i] = toTx(tran, names)
	}

	return block{
		Index:           blk.Index,
		PreviousHash:    blk.PreviousHash,
		Hash:            blk.Hash,
		Nonce:           blk.Nonce,
		Difficulty:      blk.Difficulty,
		SignerPublicKey: blk.SignerPublicKey,
		Signature:       blk.Signature.String(),
		Transactions:    trans,
	}
}

func toWallet(w database.Wallet) wallet {
	return wallet{
		Address:     w.Address,
		PublicKey:   w.PublicKey,
		DisplayName: w.DisplayName,
	}
}
