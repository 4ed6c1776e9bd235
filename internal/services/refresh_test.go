package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/topdog-adp/internal/adp"
	"github.com/jstittsworth/topdog-adp/internal/models"
)

func newTestRefreshService(t *testing.T) (*RefreshService, *PickStore, *SnapshotStore, *memoryCache) {
	t.Helper()

	db := newTestDB(t)
	logger := testLogger()
	picks := NewPickStore(db, logger)
	seeds := NewSeedStore(db, logger)
	snapshots := NewSnapshotStore(db, logger)
	cache := newMemoryCache()

	cutover := time.Now().UTC().AddDate(0, -2, 0)
	svc := NewRefreshService(
		picks, seeds, snapshots, cache, logger,
		"2026", cutover, adp.DefaultParameters(), 12*time.Hour,
	)
	return svc, picks, snapshots, cache
}

func TestRefreshNowStoresAndCachesSnapshot(t *testing.T) {
	svc, picks, snapshots, cache := newTestRefreshService(t)
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, picks.Ingest([]models.PickEvent{
		testEvent("mahomes", 2, now.AddDate(0, 0, -1)),
		testEvent("mahomes", 4, now.AddDate(0, 0, -2)),
		testEvent("chase", 1, now.AddDate(0, 0, -1)),
	}))

	id, err := svc.RefreshNow()
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored, err := snapshots.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Contains(t, stored.Players, "mahomes")
	assert.Equal(t, 2, stored.Players["mahomes"].PickCount)
	assert.Equal(t, adp.BlendSlowOnly, stored.Metadata.BlendMode)

	// the latest snapshot lands in the cache for the read path
	assert.Contains(t, cache.entries, LatestSnapshotCacheKey("2026"))

	status := svc.Status()
	assert.Equal(t, 1, status.RunCount)
	assert.Equal(t, id, status.LastSnapshotID)
	assert.Empty(t, status.LastError)
	require.NotNil(t, status.LastRunAt)
}

func TestRefreshNowTracksChangeFromPrevious(t *testing.T) {
	svc, picks, snapshots, _ := newTestRefreshService(t)
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, picks.Ingest([]models.PickEvent{
		testEvent("mahomes", 10, now.AddDate(0, 0, -1)),
	}))
	firstID, err := svc.RefreshNow()
	require.NoError(t, err)

	first, err := snapshots.GetByID(firstID)
	require.NoError(t, err)
	assert.Zero(t, first.Players["mahomes"].ChangeFromPrevious)

	// later picks pull the player earlier; the next run reports the delta
	require.NoError(t, picks.Ingest([]models.PickEvent{
		testEvent("mahomes", 2, now),
		testEvent("mahomes", 2, now),
		testEvent("mahomes", 2, now),
	}))
	secondID, err := svc.RefreshNow()
	require.NoError(t, err)

	second, err := snapshots.GetByID(secondID)
	require.NoError(t, err)
	prev := first.Players["mahomes"].ADP
	cur := second.Players["mahomes"].ADP
	assert.Less(t, cur, prev)
	assert.InDelta(t, cur-prev, second.Players["mahomes"].ChangeFromPrevious, 0.0501)

	status := svc.Status()
	assert.Equal(t, 2, status.RunCount)
}

func TestRefreshNowWithNoData(t *testing.T) {
	svc, _, snapshots, _ := newTestRefreshService(t)

	id, err := svc.RefreshNow()
	require.NoError(t, err)

	stored, err := snapshots.GetByID(id)
	require.NoError(t, err)
	assert.Empty(t, stored.Players)
	assert.Equal(t, 0, stored.Metadata.Stats.EventsProcessed)
	assert.Nil(t, stored.Metadata.ObservedDateRange)
}

func TestRefreshServiceStartStop(t *testing.T) {
	svc, _, _, _ := newTestRefreshService(t)

	require.NoError(t, svc.Start(false))
	assert.True(t, svc.Status().Running)

	// double start is rejected
	assert.Error(t, svc.Start(false))

	svc.Stop()
	assert.False(t, svc.Status().Running)
}

func TestRefreshServiceStopWithRunInFlightAndTickPending(t *testing.T) {
	svc, _, _, _ := newTestRefreshService(t)
	svc.interval = 10 * time.Millisecond
	require.NoError(t, svc.Start(false))

	// hold the run mutex the way a manual RefreshNow would, long enough for
	// a scheduled tick to fire and queue up behind it
	svc.mu.Lock()
	time.Sleep(30 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		svc.Stop()
		close(done)
	}()

	// Stop must not sit on the mutex while draining the scheduler, or the
	// queued run could never acquire it and the drain would never complete
	time.Sleep(20 * time.Millisecond)
	svc.mu.Unlock()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return after the in-flight run released the lock")
	}
	assert.False(t, svc.Status().Running)
}
