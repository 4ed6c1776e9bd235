package handlers

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/topdog-adp/internal/adp"
	"github.com/jstittsworth/topdog-adp/internal/services"
	"github.com/jstittsworth/topdog-adp/pkg/utils"
)

type ADPHandler struct {
	snapshots *services.SnapshotStore
	cache     *services.CacheService
	refresh   *services.RefreshService
	season    string
}

func NewADPHandler(snapshots *services.SnapshotStore, cache *services.CacheService, refresh *services.RefreshService, season string) *ADPHandler {
	return &ADPHandler{
		snapshots: snapshots,
		cache:     cache,
		refresh:   refresh,
		season:    season,
	}
}

// rankedPlayer is one row of the rankings view, ordered by ADP.
type rankedPlayer struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	adp.PlayerResult
}

// GetRankings returns the latest snapshot as an ordered ranking.
func (h *ADPHandler) GetRankings(c *gin.Context) {
	season := c.DefaultQuery("season", h.season)

	snap, err := h.latestSnapshot(season)
	if err != nil {
		utils.SendInternalError(c, "Failed to load rankings")
		return
	}
	if snap == nil {
		utils.SendNotFound(c, "No ADP snapshot available yet")
		return
	}

	utils.SendSuccess(c, gin.H{
		"metadata": snap.Metadata,
		"rankings": rankPlayers(snap.Players),
	})
}

// GetPlayer returns one player's latest entry plus their recent history.
func (h *ADPHandler) GetPlayer(c *gin.Context) {
	playerID := c.Param("id")
	season := c.DefaultQuery("season", h.season)

	snap, err := h.latestSnapshot(season)
	if err != nil {
		utils.SendInternalError(c, "Failed to load player ADP")
		return
	}
	if snap == nil {
		utils.SendNotFound(c, "No ADP snapshot available yet")
		return
	}

	result, ok := snap.Players[playerID]
	if !ok {
		utils.SendNotFound(c, "Player not ranked")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("history", "10"))
	history, err := h.snapshots.PlayerHistory(season, playerID, limit)
	if err != nil {
		utils.SendInternalError(c, "Failed to load player history")
		return
	}

	utils.SendSuccess(c, gin.H{
		"player_id": playerID,
		"current":   result,
		"history":   history,
	})
}

// ListSnapshots returns recent snapshot provenance rows.
func (h *ADPHandler) ListSnapshots(c *gin.Context) {
	season := c.DefaultQuery("season", h.season)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	rows, err := h.snapshots.History(season, limit)
	if err != nil {
		utils.SendInternalError(c, "Failed to load snapshots")
		return
	}
	utils.SendSuccess(c, rows)
}

// GetSnapshot returns one full snapshot, players and all.
func (h *ADPHandler) GetSnapshot(c *gin.Context) {
	snap, err := h.snapshots.GetByID(c.Param("id"))
	if err != nil {
		utils.SendInternalError(c, "Failed to load snapshot")
		return
	}
	if snap == nil {
		utils.SendNotFound(c, "Snapshot not found")
		return
	}
	utils.SendSuccess(c, snap)
}

// GetStatus reports the refresh scheduler's state.
func (h *ADPHandler) GetStatus(c *gin.Context) {
	utils.SendSuccess(c, h.refresh.Status())
}

// TriggerRefresh recomputes the snapshot immediately.
func (h *ADPHandler) TriggerRefresh(c *gin.Context) {
	snapshotID, err := h.refresh.RefreshNow()
	if err != nil {
		utils.SendInternalError(c, "ADP refresh failed")
		return
	}
	utils.SendSuccess(c, gin.H{"snapshot_id": snapshotID})
}

func (h *ADPHandler) latestSnapshot(season string) (*adp.Snapshot, error) {
	ctx := context.Background()
	cacheKey := services.LatestSnapshotCacheKey(season)

	var cached adp.Snapshot
	if err := h.cache.Get(ctx, cacheKey, &cached); err == nil && len(cached.Players) > 0 {
		return &cached, nil
	}

	snap, err := h.snapshots.Latest(season)
	if err != nil || snap == nil {
		return snap, err
	}
	h.cache.SetWithRetry(ctx, cacheKey, snap, 24*time.Hour, 1)
	return snap, nil
}

// rankPlayers orders snapshot entries by ADP, ties broken by player ID so
// the view is stable run to run.
func rankPlayers(players map[string]adp.PlayerResult) []rankedPlayer {
	ranked := make([]rankedPlayer, 0, len(players))
	for id, result := range players {
		ranked = append(ranked, rankedPlayer{PlayerID: id, PlayerResult: result})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ADP != ranked[j].ADP {
			return ranked[i].ADP < ranked[j].ADP
		}
		return ranked[i].PlayerID < ranked[j].PlayerID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
