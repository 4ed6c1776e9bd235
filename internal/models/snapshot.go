package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/jstittsworth/topdog-adp/internal/adp"
)

// Snapshot is a persisted ADP run. Metadata and Players mirror the versioned
// output contract exactly; they are stored as JSONB so the compatibility
// surface stays byte-for-byte what the algorithm emitted.
type Snapshot struct {
	ID               string         `gorm:"primaryKey;size:36" json:"id"`
	Season           string         `gorm:"size:10;not null;index:idx_snapshots_season_generated,priority:1" json:"season"`
	GeneratedAt      time.Time      `gorm:"not null;index:idx_snapshots_season_generated,priority:2" json:"generated_at"`
	AlgorithmVersion string         `gorm:"size:20;not null" json:"algorithm_version"`
	BlendMode        string         `gorm:"size:20;not null" json:"blend_mode"`
	Metadata         datatypes.JSON `gorm:"type:jsonb;not null" json:"metadata"`
	Players          datatypes.JSON `gorm:"type:jsonb;not null" json:"players"`
	CreatedAt        time.Time      `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Snapshot) TableName() string {
	return "adp_snapshots"
}

// ToADP decodes the stored snapshot back into the algorithm's output type.
func (s *Snapshot) ToADP() (adp.Snapshot, error) {
	var snap adp.Snapshot
	if err := json.Unmarshal(s.Metadata, &snap.Metadata); err != nil {
		return adp.Snapshot{}, fmt.Errorf("failed to decode snapshot metadata: %w", err)
	}
	snap.Players = make(map[string]adp.PlayerResult)
	if err := json.Unmarshal(s.Players, &snap.Players); err != nil {
		return adp.Snapshot{}, fmt.Errorf("failed to decode snapshot players: %w", err)
	}
	return snap, nil
}

// NewSnapshot encodes an algorithm result for persistence under the given ID.
func NewSnapshot(id string, snap adp.Snapshot) (*Snapshot, error) {
	metadata, err := json.Marshal(snap.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot metadata: %w", err)
	}
	players, err := json.Marshal(snap.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot players: %w", err)
	}
	return &Snapshot{
		ID:               id,
		Season:           snap.Metadata.Season,
		GeneratedAt:      snap.Metadata.GeneratedAt,
		AlgorithmVersion: snap.Metadata.AlgorithmVersion,
		BlendMode:        string(snap.Metadata.BlendMode),
		Metadata:         metadata,
		Players:          players,
	}, nil
}
