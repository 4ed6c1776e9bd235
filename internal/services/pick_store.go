package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/topdog-adp/internal/adp"
	"github.com/jstittsworth/topdog-adp/internal/models"
	"github.com/jstittsworth/topdog-adp/pkg/database"
)

// PickStore persists and retrieves draft pick events.
type PickStore struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewPickStore(db *database.DB, logger *logrus.Logger) *PickStore {
	return &PickStore{db: db, logger: logger}
}

// Ingest validates and stores a batch of pick events. The whole batch is
// rejected if any event fails validation so draft rooms can retry atomically.
func (s *PickStore) Ingest(events []models.PickEvent) error {
	if len(events) == 0 {
		return nil
	}
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return fmt.Errorf("event %d invalid: %w", i, err)
		}
	}

	if err := s.db.Create(&events).Error; err != nil {
		return fmt.Errorf("failed to store pick events: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"count":  len(events),
		"season": events[0].Season,
	}).Debug("Ingested pick events")
	return nil
}

// EventsSince loads the season's pick events with picked_at >= since. The
// query window is a coarse pre-filter; the algorithm re-applies its age
// window authoritatively against the run's own now instant.
func (s *PickStore) EventsSince(season string, since time.Time) ([]adp.PickEvent, error) {
	var rows []models.PickEvent
	err := s.db.
		Where("season = ? AND picked_at >= ?", season, since).
		Order("picked_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pick events: %w", err)
	}

	events := make([]adp.PickEvent, len(rows))
	for i := range rows {
		events[i] = rows[i].ToADP()
	}
	return events, nil
}

// CountBySeason returns the total stored events for a season, mostly for
// status reporting.
func (s *PickStore) CountBySeason(season string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.PickEvent{}).Where("season = ?", season).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pick events: %w", err)
	}
	return count, nil
}

// DeleteOlderThan prunes events that can no longer fall inside any age
// window. Returns the number of rows removed.
func (s *PickStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := s.db.Where("picked_at < ?", cutoff).Delete(&models.PickEvent{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune pick events: %w", res.Error)
	}
	return res.RowsAffected, nil
}
