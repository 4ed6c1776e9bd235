package models

import (
	"fmt"
	"time"

	"github.com/jstittsworth/topdog-adp/internal/adp"
)

// PickEvent is one observed draft selection as persisted from the draft rooms.
type PickEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Season     string    `gorm:"size:10;not null;index:idx_pick_events_window,priority:1" json:"season"`
	PlayerID   string    `gorm:"size:64;not null;index" json:"player_id"`
	PickNumber int       `gorm:"not null" json:"pick_number"`
	DraftID    string    `gorm:"size:64;not null;index" json:"draft_id"`
	Format     string    `gorm:"size:10;not null;index:idx_pick_events_window,priority:2" json:"format"`
	PickedAt   time.Time `gorm:"not null;index:idx_pick_events_window,priority:3" json:"picked_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (PickEvent) TableName() string {
	return "pick_events"
}

// Validate enforces the ingest contract. Bad pick data is rejected at the
// boundary, never absorbed into the math.
func (e *PickEvent) Validate() error {
	if e.PlayerID == "" {
		return fmt.Errorf("player_id is required")
	}
	if e.PickNumber < 1 {
		return fmt.Errorf("pick_number must be >= 1, got %d", e.PickNumber)
	}
	if e.DraftID == "" {
		return fmt.Errorf("draft_id is required")
	}
	if !adp.Format(e.Format).Valid() {
		return fmt.Errorf("unknown format %q", e.Format)
	}
	if e.PickedAt.IsZero() {
		return fmt.Errorf("picked_at is required")
	}
	return nil
}

// ToADP converts the persisted row into the computation's input type.
func (e *PickEvent) ToADP() adp.PickEvent {
	return adp.PickEvent{
		PlayerID:   e.PlayerID,
		PickNumber: e.PickNumber,
		PickedAt:   e.PickedAt,
		DraftID:    e.DraftID,
		Format:     adp.Format(e.Format),
	}
}
