package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/topdog-adp/internal/adp"
	"github.com/jstittsworth/topdog-adp/internal/models"
)

func testEvent(player string, pick int, pickedAt time.Time) models.PickEvent {
	return models.PickEvent{
		Season:     "2026",
		PlayerID:   player,
		PickNumber: pick,
		DraftID:    "draft-1",
		Format:     "slow",
		PickedAt:   pickedAt,
	}
}

func TestPickStoreIngestAndLoad(t *testing.T) {
	store := NewPickStore(newTestDB(t), testLogger())
	now := time.Now().UTC().Truncate(time.Second)

	err := store.Ingest([]models.PickEvent{
		testEvent("mahomes", 3, now.AddDate(0, 0, -1)),
		testEvent("chase", 1, now.AddDate(0, 0, -2)),
	})
	require.NoError(t, err)

	events, err := store.EventsSince("2026", now.AddDate(0, 0, -31))
	require.NoError(t, err)
	require.Len(t, events, 2)
	// ordered by picked_at ascending
	assert.Equal(t, "chase", events[0].PlayerID)
	assert.Equal(t, adp.FormatSlow, events[0].Format)
	assert.Equal(t, 1, events[0].PickNumber)
}

func TestPickStoreIngestRejectsInvalidBatch(t *testing.T) {
	store := NewPickStore(newTestDB(t), testLogger())
	now := time.Now().UTC()

	bad := testEvent("mahomes", 0, now) // pick numbers are 1-based
	err := store.Ingest([]models.PickEvent{testEvent("chase", 1, now), bad})
	require.Error(t, err)

	// the whole batch must be rejected
	count, err := store.CountBySeason("2026")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPickStoreIngestRejectsUnknownFormat(t *testing.T) {
	store := NewPickStore(newTestDB(t), testLogger())

	ev := testEvent("chase", 1, time.Now().UTC())
	ev.Format = "turbo"
	err := store.Ingest([]models.PickEvent{ev})
	assert.Error(t, err)
}

func TestPickStoreWindowFiltersOldEvents(t *testing.T) {
	store := NewPickStore(newTestDB(t), testLogger())
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, store.Ingest([]models.PickEvent{
		testEvent("recent", 5, now.AddDate(0, 0, -3)),
		testEvent("ancient", 5, now.AddDate(0, 0, -60)),
	}))

	events, err := store.EventsSince("2026", now.AddDate(0, 0, -31))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "recent", events[0].PlayerID)
}

func TestPickStoreDeleteOlderThan(t *testing.T) {
	store := NewPickStore(newTestDB(t), testLogger())
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, store.Ingest([]models.PickEvent{
		testEvent("keep", 5, now.AddDate(0, 0, -3)),
		testEvent("prune", 5, now.AddDate(0, 0, -90)),
	}))

	removed, err := store.DeleteOlderThan(now.AddDate(0, 0, -45))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	count, err := store.CountBySeason("2026")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
