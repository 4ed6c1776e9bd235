package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jstittsworth/topdog-adp/internal/adp"
	"github.com/jstittsworth/topdog-adp/internal/models"
	"github.com/jstittsworth/topdog-adp/internal/providers"
	"github.com/jstittsworth/topdog-adp/pkg/database"
)

// SeedStore manages the baseline ranking used to stabilize thin live data.
type SeedStore struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewSeedStore(db *database.DB, logger *logrus.Logger) *SeedStore {
	return &SeedStore{db: db, logger: logger}
}

// Get loads the season's seed prior. A missing prior is not an error: the
// algorithm runs fine without one, it just has nothing to blend toward.
func (s *SeedStore) Get(season string) (adp.SeedPrior, error) {
	var row models.SeedPrior
	err := s.db.Where("season = ?", season).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return adp.SeedPrior{Season: season, Values: map[string]float64{}}, nil
	}
	if err != nil {
		return adp.SeedPrior{}, fmt.Errorf("failed to load seed prior: %w", err)
	}
	return row.ToADP()
}

// Save upserts the season's seed prior.
func (s *SeedStore) Save(prior adp.SeedPrior) error {
	row, err := models.NewSeedPrior(prior)
	if err != nil {
		return err
	}

	var existing models.SeedPrior
	err = s.db.Where("season = ?", prior.Season).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(row).Error; err != nil {
			return fmt.Errorf("failed to create seed prior: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up seed prior: %w", err)
	default:
		existing.Description = row.Description
		existing.Values = row.Values
		if err := s.db.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update seed prior: %w", err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"season":  prior.Season,
		"players": len(prior.Values),
	}).Info("Saved seed prior")
	return nil
}

// BuildFromProjections converts a preseason projections feed into a seed
// prior. Players are ordered by projected fantasy points and their 1-based
// overall rank becomes the prior ADP, which is exactly how a baseline is
// drafted before any live pick data exists.
func BuildFromProjections(season, description string, projections []providers.Projection) adp.SeedPrior {
	sorted := make([]providers.Projection, len(projections))
	copy(sorted, projections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FantasyPoints > sorted[j].FantasyPoints
	})

	values := make(map[string]float64, len(sorted))
	for i, p := range sorted {
		values[p.PlayerID] = float64(i + 1)
	}
	return adp.SeedPrior{
		Season:      season,
		Description: description,
		Values:      values,
	}
}
