package worker

import (
	"context"
	"errors"
	"time"
)

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case j := <-w.startMining:
			if w.isShutdown() {
				w.abandon()
				continue
			}
			w.runMiningOperation(j)

		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")

			// A job may still be queued behind the shut signal.
			select {
			case <-w.startMining:
				w.abandon()
			default:
			}
			return
		}
	}
}

// abandon releases a mining job that was accepted but will never run.
func (w *Worker) abandon() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.status.Running = false
	w.status.Cancelled = true

	w.evHandler("worker: abandon: MINING: job dropped on shutdown")
}

// runMiningOperation takes all the transactions from the mempool and writes a
// new block to the chain.
func (w *Worker) runMiningOperation(j job) {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	t := time.Now()
	block, err := w.state.MinePending(j.ctx, j.privateKey)
	duration := time.Since(t)

	w.evHandler("worker: runMiningOperation: MINING: mining duration[%v]", duration)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.cancel()
	w.cancel = nil
	w.status.Running = false
	w.status.Cancelled = false
	w.status.LastError = ""

	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			w.evHandler("worker: runMiningOperation: MINING: CANCEL: complete")
			w.status.Cancelled = true
		default:
			w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
			w.status.LastError = err.Error()
		}
		return
	}

	w.evHandler("worker: runMiningOperation: MINING: block[%d]: hash[%s]", block.Index, block.Hash)
	w.status.LastBlock = &block
}
