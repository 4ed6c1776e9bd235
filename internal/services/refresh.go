package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/topdog-adp/internal/adp"
)

// SnapshotCache is the subset of the cache the refresh loop writes to.
type SnapshotCache interface {
	SetSimple(key string, value interface{}, expiration time.Duration) error
}

// RefreshStatus reports the scheduler's view of the world.
type RefreshStatus struct {
	Running        bool       `json:"running"`
	LastRunAt      *time.Time `json:"last_run_at,omitempty"`
	LastSnapshotID string     `json:"last_snapshot_id,omitempty"`
	LastError      string     `json:"last_error,omitempty"`
	RunCount       int        `json:"run_count"`
	Interval       string     `json:"interval"`
}

// RefreshService recomputes the ADP snapshot on a schedule and on demand.
// Each run is an independent pure computation: it loads a fresh view of the
// inputs, hands them to the algorithm with an explicit now instant, and
// persists whatever comes back. Overlapping triggers are serialized by a
// mutex rather than coordinated, because concurrent runs are harmless, just
// wasteful.
type RefreshService struct {
	picks     *PickStore
	seeds     *SeedStore
	snapshots *SnapshotStore
	cache     SnapshotCache
	logger    *logrus.Logger
	cron      *cron.Cron

	season   string
	cutover  time.Time
	params   adp.Parameters
	interval time.Duration

	mu             sync.Mutex
	isRunning      bool
	lastRunAt      *time.Time
	lastSnapshotID string
	lastError      string
	runCount       int
}

func NewRefreshService(
	picks *PickStore,
	seeds *SeedStore,
	snapshots *SnapshotStore,
	cache SnapshotCache,
	logger *logrus.Logger,
	season string,
	cutover time.Time,
	params adp.Parameters,
	interval time.Duration,
) *RefreshService {
	return &RefreshService{
		picks:     picks,
		seeds:     seeds,
		snapshots: snapshots,
		cache:     cache,
		logger:    logger,
		cron:      cron.New(),
		season:    season,
		cutover:   cutover,
		params:    params,
		interval:  interval,
	}
}

// Start begins the scheduled recomputes. runInitial triggers one refresh
// immediately so a cold deployment serves rankings without waiting half a
// day.
func (s *RefreshService) Start(runInitial bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresh service is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.interval.String())
	if _, err := s.cron.AddFunc(schedule, s.refreshScheduled); err != nil {
		return fmt.Errorf("failed to schedule ADP refresh: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	if runInitial {
		go s.refreshScheduled()
	}

	s.logger.Infof("ADP refresh service started (every %s)", s.interval)
	return nil
}

// Stop halts the scheduler, waiting for an in-flight run to finish. The wait
// happens outside the mutex: a scheduled run blocked on s.mu must be able to
// acquire it and complete, or the drain below would never finish.
func (s *RefreshService) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("ADP refresh service stopped")
}

func (s *RefreshService) refreshScheduled() {
	if _, err := s.RefreshNow(); err != nil {
		s.logger.Errorf("Scheduled ADP refresh failed: %v", err)
	}
}

// RefreshNow runs one full recompute and returns the stored snapshot ID.
func (s *RefreshService) RefreshNow() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	snapshotID, err := s.runOnce(now)

	s.lastRunAt = &now
	s.runCount++
	if err != nil {
		s.lastError = err.Error()
		return "", err
	}
	s.lastError = ""
	s.lastSnapshotID = snapshotID
	return snapshotID, nil
}

func (s *RefreshService) runOnce(now time.Time) (string, error) {
	// the DB window is one day wider than the algorithm's so boundary events
	// are never cut off by query-vs-run clock drift
	since := now.AddDate(0, 0, -(s.params.MaxAgeDays + 1))
	events, err := s.picks.EventsSince(s.season, since)
	if err != nil {
		return "", err
	}

	seed, err := s.seeds.Get(s.season)
	if err != nil {
		return "", err
	}

	previous, err := s.snapshots.Latest(s.season)
	if err != nil {
		return "", err
	}

	snap, err := adp.BuildSnapshot(adp.Input{
		Now:           now,
		Season:        s.season,
		Events:        events,
		Seed:          seed,
		Params:        s.params,
		FormatCutover: s.cutover,
		Previous:      previous,
	})
	if err != nil {
		return "", fmt.Errorf("ADP computation failed: %w", err)
	}

	snapshotID, err := s.snapshots.Save(snap)
	if err != nil {
		return "", err
	}

	if err := s.cache.SetSimple(LatestSnapshotCacheKey(s.season), snap, 24*time.Hour); err != nil {
		s.logger.Warnf("Failed to cache latest snapshot: %v", err)
	}

	s.logger.WithFields(logrus.Fields{
		"snapshot_id":      snapshotID,
		"players":          len(snap.Players),
		"blend_mode":       snap.Metadata.BlendMode,
		"events_processed": snap.Metadata.Stats.EventsProcessed,
		"outliers_removed": snap.Metadata.Stats.OutliersRemoved,
		"execution_ms":     snap.Metadata.Stats.ExecutionTimeMs,
	}).Info("ADP refresh completed")
	return snapshotID, nil
}

// Status reports scheduler state for the status endpoint.
func (s *RefreshService) Status() RefreshStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return RefreshStatus{
		Running:        s.isRunning,
		LastRunAt:      s.lastRunAt,
		LastSnapshotID: s.lastSnapshotID,
		LastError:      s.lastError,
		RunCount:       s.runCount,
		Interval:       s.interval.String(),
	}
}
