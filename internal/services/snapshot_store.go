package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jstittsworth/topdog-adp/internal/adp"
	"github.com/jstittsworth/topdog-adp/internal/models"
	"github.com/jstittsworth/topdog-adp/pkg/database"
)

// SnapshotStore persists ADP snapshots and serves the latest one per season.
type SnapshotStore struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewSnapshotStore(db *database.DB, logger *logrus.Logger) *SnapshotStore {
	return &SnapshotStore{db: db, logger: logger}
}

// Save stores a freshly computed snapshot and returns its assigned ID.
func (s *SnapshotStore) Save(snap adp.Snapshot) (string, error) {
	id := uuid.New().String()
	row, err := models.NewSnapshot(id, snap)
	if err != nil {
		return "", err
	}
	if err := s.db.Create(row).Error; err != nil {
		return "", fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"snapshot_id": id,
		"season":      snap.Metadata.Season,
		"players":     len(snap.Players),
		"blend_mode":  snap.Metadata.BlendMode,
	}).Info("Stored ADP snapshot")
	return id, nil
}

// Latest returns the season's most recent snapshot, or nil when no run has
// happened yet.
func (s *SnapshotStore) Latest(season string) (*adp.Snapshot, error) {
	var row models.Snapshot
	err := s.db.
		Where("season = ?", season).
		Order("generated_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest snapshot: %w", err)
	}

	snap, err := row.ToADP()
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetByID loads one snapshot by its assigned ID.
func (s *SnapshotStore) GetByID(id string) (*adp.Snapshot, error) {
	var row models.Snapshot
	err := s.db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	snap, err := row.ToADP()
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// PlayerHistoryPoint is one snapshot's view of a single player.
type PlayerHistoryPoint struct {
	SnapshotID  string           `json:"snapshot_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Result      adp.PlayerResult `json:"result"`
}

// PlayerHistory returns a player's entries across the season's most recent
// snapshots, newest first. Snapshots where the player was absent are skipped.
func (s *SnapshotStore) PlayerHistory(season, playerID string, limit int) ([]PlayerHistoryPoint, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.Snapshot
	err := s.db.
		Where("season = ?", season).
		Order("generated_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot history: %w", err)
	}

	points := make([]PlayerHistoryPoint, 0, len(rows))
	for i := range rows {
		snap, err := rows[i].ToADP()
		if err != nil {
			return nil, err
		}
		if result, ok := snap.Players[playerID]; ok {
			points = append(points, PlayerHistoryPoint{
				SnapshotID:  rows[i].ID,
				GeneratedAt: rows[i].GeneratedAt,
				Result:      result,
			})
		}
	}
	return points, nil
}

// History lists the season's snapshot rows, newest first, without decoding
// the full player payloads.
func (s *SnapshotStore) History(season string, limit int) ([]models.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.Snapshot
	err := s.db.
		Select("id", "season", "generated_at", "algorithm_version", "blend_mode", "created_at").
		Where("season = ?", season).
		Order("generated_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot history: %w", err)
	}
	return rows, nil
}
