package validate_test

import (
	"testing"

	"github.com/ardanlabs/powledger/business/sys/validate"
)

type wallet struct {
	PublicKey   string `json:"public_key" validate:"required,hexadecimal"`
	DisplayName string `json:"display_name" validate:"required,max=64"`
}

func TestCheck(t *testing.T) {
	if err := validate.Check(wallet{PublicKey: "0x04ab", DisplayName: "bill"}); err != nil {
		t.Fatalf("Should accept a valid model: %v", err)
	}

	err := validate.Check(wallet{PublicKey: "zz"})
	if !validate.IsFieldErrors(err) {
		t.Fatalf("Should return field errors: %v", err)
	}

	fields := validate.GetFieldErrors(err).Fields()
	if len(fields) != 2 || fields["public_key"] == "" || fields["display_name"] == "" {
		t.Fatalf("Should name the failing fields by their json tag: %v", fields)
	}
}
