package events_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/powledger/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestEvents(t *testing.T) {
	t.Log("Given the need to fan out ledger events.")
	{
		evts := events.New()

		a := evts.Acquire("a")
		b := evts.Acquire("b")

		if again := evts.Acquire("a"); again != a {
			t.Fatalf("\t%s\tShould get the same channel for the same id.", failed)
		}
		t.Logf("\t%s\tShould get the same channel for the same id.", success)

		if n := evts.Count(); n != 2 {
			t.Fatalf("\t%s\tShould count 2 listeners, got %d.", failed, n)
		}
		t.Logf("\t%s\tShould count every listener.", success)

		evts.Send("state: MinePending: block[1]")

		for name, ch := range map[string]chan string{"a": a, "b": b} {
			if msg := <-ch; msg != "state: MinePending: block[1]" {
				t.Fatalf("\t%s\tShould deliver the message to %s, got %q.", failed, name, msg)
			}
		}
		t.Logf("\t%s\tShould deliver the message to every listener.", success)

		if err := evts.Release("a"); err != nil {
			t.Fatalf("\t%s\tShould be able to release a listener: %v", failed, err)
		}
		if _, open := <-a; open {
			t.Fatalf("\t%s\tShould close a released channel.", failed)
		}
		t.Logf("\t%s\tShould close a released channel.", success)

		if err := evts.Release("a"); !errors.Is(err, events.ErrUnknownID) {
			t.Fatalf("\t%s\tShould reject an unknown id: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject an unknown id.", success)

		// A full buffer drops messages instead of blocking.
		for j := 0; j < 500; j++ {
			evts.Send("flood")
		}
		t.Logf("\t%s\tShould not block on a slow listener.", success)

		evts.Shutdown()

		if evts.Count() != 0 {
			t.Fatalf("\t%s\tShould remove every listener on shutdown.", failed)
		}

		if _, open := <-evts.Acquire("late"); open {
			t.Fatalf("\t%s\tShould hand out closed channels after shutdown.", failed)
		}
		t.Logf("\t%s\tShould hand out closed channels after shutdown.", success)
	}
}
