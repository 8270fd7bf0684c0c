// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time       `json:"date"`
	Difficulty   int             `json:"difficulty"`    // How difficult it needs to be to solve the work problem.
	MiningReward decimal.Decimal `json:"mining_reward"` // Reward for mining a block, before fees.
}

// Default returns the settings used when no genesis file is provided.
func Default() Genesis {
	return Genesis{
		Date:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Difficulty:   3,
		MiningReward: decimal.NewFromInt(1),
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	err = json.Unmarshal(content, &genesis)
	if err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
