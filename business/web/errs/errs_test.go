package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ardanlabs/powledger/business/web/errs"
)

func TestTrusted(t *testing.T) {
	sentinel := errors.New("unknown sender")

	err := fmt.Errorf("handler: %w", errs.NewTrusted(fmt.Errorf("%w: 0x01", sentinel), http.StatusBadRequest))

	if !errs.IsTrusted(err) {
		t.Fatalf("Should find the trusted error in the chain.")
	}

	te := errs.GetTrusted(err)
	if te.Status != http.StatusBadRequest || te.Error() != "unknown sender: 0x01" {
		t.Fatalf("Should keep the status and message: %d %s", te.Status, te.Error())
	}

	if !errors.Is(err, sentinel) {
		t.Fatalf("Should unwrap to the sentinel error.")
	}

	if errs.GetTrusted(errors.New("plain")) != nil {
		t.Fatalf("Should not find a trusted error in a plain error.")
	}
}
