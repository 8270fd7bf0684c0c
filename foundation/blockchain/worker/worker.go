// Package worker runs mining operations for the ledger in the background so
// a caller can start, watch and cancel a mine without blocking.
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
)

// Set of error variables for the mining workflow.
var (
	ErrMiningInProgress = errors.New("mining operation already in progress")
	ErrShutdown         = errors.New("worker is shutting down")
)

// Status represents the outcome of the most recent mining operation.
type Status struct {
	Running   bool            `json:"running"`
	LastBlock *database.Block `json:"last_block,omitempty"`
	LastError string          `json:"last_error,omitempty"`
	Cancelled bool            `json:"cancelled"`
}

// job represents a single request to mine the mempool.
type job struct {
	ctx        context.Context
	privateKey string
}

// =============================================================================

// Worker manages the POW workflow for the ledger.
type Worker struct {
	state       *state.State
	wg          sync.WaitGroup
	shut        chan struct{}
	startMining chan job
	evHandler   state.EventHandler

	mu     sync.Mutex
	cancel context.CancelFunc
	status Status
}

// Run creates a worker and starts up the background mining process.
func Run(st *state.State, evHandler state.EventHandler) *Worker {
	if evHandler == nil {
		evHandler = func(v string, args ...any) {}
	}

	w := Worker{
		state:       st,
		shut:        make(chan struct{}),
		startMining: make(chan job, 1),
		evHandler:   evHandler,
	}

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.miningOperations()
	}()

	<-hasStarted

	return &w
}

// Shutdown cancels any running mining operation and terminates the goroutine
// performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.mu.Lock()
	select {
	case <-w.shut:
		w.mu.Unlock()
		return
	default:
	}
	close(w.shut)
	w.mu.Unlock()

	w.evHandler("worker: shutdown: signal cancel mining")
	w.CancelMining()

	w.evHandler("worker: shutdown: terminate goroutines")
	w.wg.Wait()
}

// StartMining starts a mining operation on behalf of the miner that owns the
// private key. Only one operation can run at a time.
func (w *Worker) StartMining(privateKey string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isShutdown() {
		return ErrShutdown
	}

	if w.status.Running {
		return ErrMiningInProgress
	}

	ctx, cancel := context.WithCancel(context.Background())

	w.cancel = cancel
	w.status.Running = true
	w.startMining <- job{ctx: ctx, privateKey: privateKey}

	w.evHandler("worker: StartMining: mining signaled")

	return nil
}

// CancelMining signals the running mining operation to stop immediately.
// It is a no-op when nothing is being mined.
func (w *Worker) CancelMining() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel == nil {
		return
	}

	w.cancel()
	w.evHandler("worker: CancelMining: MINING: CANCEL: signaled")
}

// Status returns a copy of the current mining status.
func (w *Worker) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	status := w.status
	if status.LastBlock != nil {
		block := *status.LastBlock
		status.LastBlock = &block
	}

	return status
}

// =============================================================================

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
