// Package signature provides helper functions for handling the blockchain
// signature needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Set of error variables for key handling and signing.
var (
	ErrKeyFormat = errors.New("malformed key material")
	ErrSigning   = errors.New("unable to sign payload")
)

// ledgerStamp is mixed into every digest we sign. This makes it clear the
// signature was produced for this ledger and can't be replayed as a raw
// Ethereum message.
const ledgerStamp = "\x19Ledger Signed Message:\n32"

// =============================================================================

// Hash returns a unique string for the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// GenerateKey produces a new secp256k1 private key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return crypto.GenerateKey()
}

// Sign uses the specified private key to sign the payload. The 65 byte
// signature is returned in the [R|S|V] format.
func Sign(payload []byte, privateKey *ecdsa.PrivateKey) ([]byte, error) {
	if privateKey == nil || privateKey.D == nil {
		return nil, fmt.Errorf("%w: missing private key", ErrSigning)
	}

	sig, err := crypto.Sign(stamp(payload), privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigning, err)
	}

	return sig, nil
}

// Verify checks the signature was produced over the payload by the private
// key matching the public key. Malformed input reports false.
func Verify(payload []byte, sig []byte, publicKey *ecdsa.PublicKey) bool {
	if publicKey == nil || publicKey.X == nil || len(sig) != crypto.SignatureLength {
		return false
	}

	// The recovery id is not part of the check, only [R|S].
	rs := sig[:crypto.RecoveryIDOffset]

	return crypto.VerifySignature(crypto.FromECDSAPub(publicKey), stamp(payload), rs)
}

// Address derives the account address for the public key.
func Address(publicKey *ecdsa.PublicKey) string {
	return crypto.PubkeyToAddress(*publicKey).Hex()
}

// =============================================================================

// ExportPrivateKey returns the hex representation of the private key.
func ExportPrivateKey(privateKey *ecdsa.PrivateKey) string {
	return hexutil.Encode(crypto.FromECDSA(privateKey))
}

// ImportPrivateKey converts a hex representation back into a private key.
// The 0x prefix is optional.
func ImportPrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")

	privateKey, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
	}

	return privateKey, nil
}

// ExportPublicKey returns the hex representation of the uncompressed
// public key.
func ExportPublicKey(publicKey *ecdsa.PublicKey) string {
	return hexutil.Encode(crypto.FromECDSAPub(publicKey))
}

// ImportPublicKey converts a hex representation back into a public key.
func ImportPublicKey(hexKey string) (*ecdsa.PublicKey, error) {
	hexKey = strings.TrimSpace(hexKey)
	if !strings.HasPrefix(hexKey, "0x") {
		hexKey = "0x" + hexKey
	}

	data, err := hexutil.Decode(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
	}

	publicKey, err := crypto.UnmarshalPubkey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFormat, err)
	}

	return publicKey, nil
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents the payload with the
// ledger stamp embedded into the final hash.
func stamp(payload []byte) []byte {

	// Hash the payload into a 32 byte array. This will provide
	// a data length consistency with all payloads.
	payloadHash := crypto.Keccak256(payload)

	// Hash the stamp and payload hash together in a final 32 byte
	// array that represents the payload.
	return crypto.Keccak256([]byte(ledgerStamp), payloadHash)
}
