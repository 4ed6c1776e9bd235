package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/topdog-adp/internal/api/handlers"
	"github.com/jstittsworth/topdog-adp/internal/api/middleware"
	"github.com/jstittsworth/topdog-adp/internal/services"
	"github.com/jstittsworth/topdog-adp/pkg/config"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(
	group *gin.RouterGroup,
	cfg *config.Config,
	picks *services.PickStore,
	snapshots *services.SnapshotStore,
	cache *services.CacheService,
	refresh *services.RefreshService,
) {
	adpHandler := handlers.NewADPHandler(snapshots, cache, refresh, cfg.Season)
	pickHandler := handlers.NewPickHandler(picks, cfg.Season)

	// Public ranking surface
	group.GET("/adp", adpHandler.GetRankings)
	group.GET("/adp/players/:id", adpHandler.GetPlayer)
	group.GET("/adp/snapshots", adpHandler.ListSnapshots)
	group.GET("/adp/snapshots/:id", adpHandler.GetSnapshot)
	group.GET("/adp/status", adpHandler.GetStatus)

	// Pick ingestion from the draft rooms
	ingest := group.Group("/picks")
	ingest.Use(middleware.AuthRequired(cfg.JWTSecret, "draft-room", "admin"))
	ingest.Use(middleware.RateLimit(cfg.PickIngestRateLimit, cfg.PickIngestBurst))
	{
		ingest.POST("", pickHandler.IngestPicks)
	}

	// Operational endpoints
	admin := group.Group("/adp")
	admin.Use(middleware.AuthRequired(cfg.JWTSecret, "admin"))
	{
		admin.POST("/refresh", adpHandler.TriggerRefresh)
	}
}
