package signature_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	pkHexKey    = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	otherHexKey = "9f332e3700d8fc2446eaf6d15034cf96e0c2745e40353deef032a5dbf1dfed93"
	from        = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
)

// =============================================================================

func Test_Signing(t *testing.T) {
	payload := []byte("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4|0xF01813E4B85e178A83e29B8E7bF26BD830a25f32|10|0.5|lunch")

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	other, err := crypto.HexToECDSA(otherHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	sig, err := signature.Sign(payload, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	if !signature.Verify(payload, sig, &pk.PublicKey) {
		t.Fatalf("Should be able to verify the signature with the matching key.")
	}

	if signature.Verify(payload, sig, &other.PublicKey) {
		t.Fatalf("Should not be able to verify the signature with another key.")
	}

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-1] = 'X'
	if signature.Verify(tampered, sig, &pk.PublicKey) {
		t.Fatalf("Should not be able to verify the signature over different data.")
	}

	if signature.Verify(payload, sig[:10], &pk.PublicKey) {
		t.Fatalf("Should report false for a truncated signature.")
	}

	if signature.Verify(payload, nil, &pk.PublicKey) {
		t.Fatalf("Should report false for a missing signature.")
	}

	sig2, err := signature.Sign(payload, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data twice: %s", err)
	}

	if string(sig) != string(sig2) {
		t.Fatalf("Should produce the same signature for the same payload and key.")
	}
}

func Test_SignWithoutKey(t *testing.T) {
	_, err := signature.Sign([]byte("data"), nil)
	if !errors.Is(err, signature.ErrSigning) {
		t.Logf("got: %v", err)
		t.Logf("exp: %v", signature.ErrSigning)
		t.Fatalf("Should get back a signing error without a private key.")
	}
}

func Test_Address(t *testing.T) {
	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	addr := signature.Address(&pk.PublicKey)
	if addr != from {
		t.Logf("got: %s", addr)
		t.Logf("exp: %s", from)
		t.Fatalf("Should get back the right address.")
	}
}

func Test_KeyRoundTrip(t *testing.T) {
	pk, err := signature.GenerateKey()
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	privHex := signature.ExportPrivateKey(pk)
	pk2, err := signature.ImportPrivateKey(privHex)
	if err != nil {
		t.Fatalf("Should be able to import the exported private key: %s", err)
	}

	if signature.ExportPrivateKey(pk2) != privHex {
		t.Fatalf("Should get back the same private key.")
	}

	pubHex := signature.ExportPublicKey(&pk.PublicKey)
	pub, err := signature.ImportPublicKey(pubHex)
	if err != nil {
		t.Fatalf("Should be able to import the exported public key: %s", err)
	}

	if signature.ExportPublicKey(pub) != pubHex {
		t.Fatalf("Should get back the same public key.")
	}

	if signature.Address(pub) != signature.Address(&pk.PublicKey) {
		t.Fatalf("Should derive the same address from the same public key.")
	}
}

func Test_KeyFormat(t *testing.T) {
	tt := []struct {
		name string
		load func() error
	}{
		{"private-not-hex", func() error { _, err := signature.ImportPrivateKey("zzzz"); return err }},
		{"private-short", func() error { _, err := signature.ImportPrivateKey("0x1234"); return err }},
		{"public-not-hex", func() error { _, err := signature.ImportPublicKey("0xnothex"); return err }},
		{"public-not-point", func() error { _, err := signature.ImportPublicKey("0x0401"); return err }},
		{"public-empty", func() error { _, err := signature.ImportPublicKey(""); return err }},
	}

	for _, tst := range tt {
		t.Run(tst.name, func(t *testing.T) {
			if err := tst.load(); !errors.Is(err, signature.ErrKeyFormat) {
				t.Logf("got: %v", err)
				t.Fatalf("Should get back a key format error.")
			}
		})
	}
}

func Test_Hash(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}
	hash := "0x0f6887ac85101d6d6425a617edf35bd721b5f619fb92c36c3d2224e3bdb0ee5a"

	h := signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the right hash: %s", h[:6])
	}

	h = signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the same hash twice.")
	}
}
