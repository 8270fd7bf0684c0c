// Package nameservice reads a folder of ECDSA key files and creates a name
// service lookup for the wallets they belong to.
package nameservice

import (
	"crypto/ecdsa"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

// NameService maintains the named keys and the names for their addresses.
type NameService struct {
	keys  map[string]*ecdsa.PrivateKey
	names map[string]string
}

// New constructs a name service with the keys found in the folder. The
// name of each key is the file name without the .ecdsa extension.
func New(root string) (*NameService, error) {
	ns := NameService{
		keys:  make(map[string]*ecdsa.PrivateKey),
		names: make(map[string]string),
	}

	fn := func(fileName string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if d.IsDir() || filepath.Ext(fileName) != ".ecdsa" {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("loading %s: %w", fileName, err)
		}

		name := strings.TrimSuffix(filepath.Base(fileName), ".ecdsa")
		ns.keys[name] = privateKey
		ns.names[signature.Address(&privateKey.PublicKey)] = name

		return nil
	}

	if err := filepath.WalkDir(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified address. The address is
// returned when no name is known.
func (ns *NameService) Lookup(address string) string {
	name, exists := ns.names[database.ToAddress(address)]
	if !exists {
		return address
	}
	return name
}

// Key returns the private key stored under the name.
func (ns *NameService) Key(name string) (*ecdsa.PrivateKey, bool) {
	pk, exists := ns.keys[name]
	return pk, exists
}

// Keys returns a copy of the map of names and private keys.
func (ns *NameService) Keys() map[string]*ecdsa.PrivateKey {
	cpy := make(map[string]*ecdsa.PrivateKey, len(ns.keys))
	for name, pk := range ns.keys {
		cpy[name] = pk
	}
	return cpy
}
