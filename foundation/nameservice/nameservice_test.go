package nameservice_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/ardanlabs/powledger/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestNameService(t *testing.T) {
	t.Log("Given the need to name wallets from key files.")
	{
		root := t.TempDir()

		pk, err := crypto.HexToECDSA("fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}

		if err := os.MkdirAll(filepath.Join(root, "nested"), 0755); err != nil {
			t.Fatalf("\t%s\tShould be able to create the folder: %v", failed, err)
		}

		if err := crypto.SaveECDSA(filepath.Join(root, "nested", "kennedy.ecdsa"), pk); err != nil {
			t.Fatalf("\t%s\tShould be able to save the key file: %v", failed, err)
		}

		if err := os.WriteFile(filepath.Join(root, "readme.txt"), []byte("ignored"), 0644); err != nil {
			t.Fatalf("\t%s\tShould be able to write a non key file: %v", failed, err)
		}

		ns, err := nameservice.New(root)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the name service: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the name service.", success)

		keys := ns.Keys()
		if len(keys) != 1 || keys["kennedy"] == nil {
			t.Fatalf("\t%s\tShould only load the .ecdsa files: %v", failed, keys)
		}
		t.Logf("\t%s\tShould only load the .ecdsa files.", success)

		address := signature.Address(&pk.PublicKey)
		if name := ns.Lookup(strings.ToLower(address)); name != "kennedy" {
			t.Fatalf("\t%s\tShould resolve the name for the address, got %q.", failed, name)
		}
		t.Logf("\t%s\tShould resolve the name for the address.", success)

		if name := ns.Lookup("0x0000000000000000000000000000000000000001"); name != "0x0000000000000000000000000000000000000001" {
			t.Fatalf("\t%s\tShould return the address when no name is known, got %q.", failed, name)
		}
		t.Logf("\t%s\tShould return the address when no name is known.", success)

		if _, exists := ns.Key("kennedy"); !exists {
			t.Fatalf("\t%s\tShould find the key by name.", failed)
		}
		t.Logf("\t%s\tShould find the key by name.", success)
	}
}

func TestNameServiceMissingFolder(t *testing.T) {
	if _, err := nameservice.New(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("\t%s\tShould fail on a missing folder.", failed)
	}
}
