package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
)

func Test_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")
	content := `{"date":"2024-03-01T00:00:00Z","difficulty":2,"mining_reward":"2.5"}`

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Should be able to write the genesis file: %s", err)
	}

	gen, err := genesis.Load(path)
	if err != nil {
		t.Fatalf("Should be able to load the genesis file: %s", err)
	}

	if gen.Difficulty != 2 {
		t.Logf("got: %d", gen.Difficulty)
		t.Logf("exp: %d", 2)
		t.Fatalf("Should get back the right difficulty.")
	}

	if gen.MiningReward.String() != "2.5" {
		t.Logf("got: %s", gen.MiningReward)
		t.Logf("exp: %s", "2.5")
		t.Fatalf("Should get back the right mining reward.")
	}
}

func Test_LoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")

	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatalf("Should be able to write the genesis file: %s", err)
	}

	gen, err := genesis.Load(path)
	if err != nil {
		t.Fatalf("Should be able to load the genesis file: %s", err)
	}

	def := genesis.Default()
	if gen.Difficulty != def.Difficulty || !gen.MiningReward.Equal(def.MiningReward) {
		t.Fatalf("Should keep the default values for missing fields.")
	}
}

func Test_LoadMissing(t *testing.T) {
	if _, err := genesis.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("Should fail to load a missing genesis file.")
	}
}
