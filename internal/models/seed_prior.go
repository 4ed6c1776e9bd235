package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/jstittsworth/topdog-adp/internal/adp"
)

// SeedPrior stores the baseline ranking for one season. Values is a JSONB
// map of player ID to prior ADP.
type SeedPrior struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Season      string         `gorm:"size:10;not null;uniqueIndex" json:"season"`
	Description string         `gorm:"size:255" json:"description"`
	Values      datatypes.JSON `gorm:"type:jsonb;not null" json:"values"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (SeedPrior) TableName() string {
	return "seed_priors"
}

// ToADP decodes the stored values into the computation's input type.
func (s *SeedPrior) ToADP() (adp.SeedPrior, error) {
	values := make(map[string]float64)
	if len(s.Values) > 0 {
		if err := json.Unmarshal(s.Values, &values); err != nil {
			return adp.SeedPrior{}, fmt.Errorf("failed to decode seed prior values: %w", err)
		}
	}
	return adp.SeedPrior{
		Season:      s.Season,
		Description: s.Description,
		Values:      values,
	}, nil
}

// NewSeedPrior encodes a seed prior for persistence.
func NewSeedPrior(prior adp.SeedPrior) (*SeedPrior, error) {
	values, err := json.Marshal(prior.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode seed prior values: %w", err)
	}
	return &SeedPrior{
		Season:      prior.Season,
		Description: prior.Description,
		Values:      values,
	}, nil
}
