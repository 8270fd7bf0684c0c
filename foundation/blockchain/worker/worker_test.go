package worker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newWorker(t *testing.T, difficulty int) (*state.State, *worker.Worker, string) {
	gen := genesis.Default()
	gen.Difficulty = difficulty

	st, err := state.New(state.Config{Genesis: gen})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
	}

	_, key, err := st.CreateWallet("miner")
	if err != nil {
		t.Fatalf("\t%s\tShould be able to create the miner wallet: %v", failed, err)
	}

	w := worker.Run(st, nil)
	t.Cleanup(w.Shutdown)

	return st, w, key
}

func waitIdle(t *testing.T, w *worker.Worker) worker.Status {
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		if status := w.Status(); !status.Running {
			return status
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("\t%s\tShould finish the mining operation in time.", failed)
	return worker.Status{}
}

func Test_StartMining(t *testing.T) {
	t.Log("Given the need to mine in the background.")
	{
		st, w, key := newWorker(t, state.MinDifficulty)

		if err := w.StartMining(key); err != nil {
			t.Fatalf("\t%s\tShould be able to start mining: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to start mining.", success)

		status := waitIdle(t, w)
		if status.LastBlock == nil || status.LastBlock.Index != 1 || status.LastError != "" {
			t.Fatalf("\t%s\tShould report the mined block: %+v", failed, status)
		}
		t.Logf("\t%s\tShould report the mined block.", success)

		if n := len(st.RetrieveChain()); n != 2 {
			t.Fatalf("\t%s\tShould append the block to the chain, got %d blocks.", failed, n)
		}
		t.Logf("\t%s\tShould append the block to the chain.", success)
	}
}

func Test_StartMiningUnknownMiner(t *testing.T) {
	_, w, _ := newWorker(t, state.MinDifficulty)

	if err := w.StartMining("0x1234"); err != nil {
		t.Fatalf("\t%s\tShould accept the request: %v", failed, err)
	}

	status := waitIdle(t, w)
	if status.LastError == "" || status.LastBlock != nil {
		t.Fatalf("\t%s\tShould report the mining error: %+v", failed, status)
	}
}

func Test_CancelMining(t *testing.T) {
	t.Log("Given the need to cancel a background mine.")
	{
		st, w, key := newWorker(t, state.MaxDifficulty)

		if err := w.StartMining(key); err != nil {
			t.Fatalf("\t%s\tShould be able to start mining: %v", failed, err)
		}

		if err := w.StartMining(key); !errors.Is(err, worker.ErrMiningInProgress) {
			t.Fatalf("\t%s\tShould reject a second mining request: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a second mining request.", success)

		w.CancelMining()

		status := waitIdle(t, w)
		if !status.Cancelled || status.LastBlock != nil {
			t.Fatalf("\t%s\tShould report the cancellation: %+v", failed, status)
		}
		t.Logf("\t%s\tShould report the cancellation.", success)

		if n := len(st.RetrieveChain()); n != 1 {
			t.Fatalf("\t%s\tShould not append a block, got %d blocks.", failed, n)
		}
		t.Logf("\t%s\tShould not append a block.", success)
	}
}

func Test_Shutdown(t *testing.T) {
	_, w, key := newWorker(t, state.MaxDifficulty)

	if err := w.StartMining(key); err != nil {
		t.Fatalf("\t%s\tShould be able to start mining: %v", failed, err)
	}

	w.Shutdown()

	if status := w.Status(); status.Running || !status.Cancelled {
		t.Fatalf("\t%s\tShould not report a running mine after shutdown: %+v", failed, status)
	}

	if err := w.StartMining(key); !errors.Is(err, worker.ErrShutdown) {
		t.Fatalf("\t%s\tShould reject mining after shutdown: %v", failed, err)
	}
}

func Test_ShutdownQueuedJob(t *testing.T) {
	t.Log("Given the need to shut down with a mining job still queued.")
	{
		for i := 0; i < 50; i++ {
			_, w, key := newWorker(t, state.MaxDifficulty)

			// Racing the start against shutdown lets the worker see the shut
			// signal before it ever receives the job.
			start := make(chan struct{})
			done := make(chan struct{})
			go func() {
				<-start
				w.StartMining(key)
				close(done)
			}()

			close(start)
			w.Shutdown()
			<-done

			if status := w.Status(); status.Running {
				t.Fatalf("\t%s\tTest %d:\tShould not leave a job marked running: %+v", failed, i, status)
			}
		}
		t.Logf("\t%s\tShould never leave a job marked running after shutdown.", success)
	}
}
