package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/topdog-adp/internal/api"
	"github.com/jstittsworth/topdog-adp/internal/api/middleware"
	"github.com/jstittsworth/topdog-adp/internal/services"
	"github.com/jstittsworth/topdog-adp/pkg/config"
	"github.com/jstittsworth/topdog-adp/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	cutover, err := cfg.CutoverTime()
	if err != nil {
		logrus.Fatalf("Failed to parse format cutover: %v", err)
	}
	params := cfg.ADPParameters()
	if err := params.Validate(); err != nil {
		logrus.Fatalf("Invalid ADP parameters: %v", err)
	}
	refreshInterval, err := cfg.RefreshIntervalDuration()
	if err != nil {
		logrus.Warnf("Invalid refresh interval, using default 12h: %v", err)
		refreshInterval = 12 * time.Hour
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize services
	logger := logrus.StandardLogger()
	cacheService := services.NewCacheService(redisClient)
	pickStore := services.NewPickStore(db, logger)
	seedStore := services.NewSeedStore(db, logger)
	snapshotStore := services.NewSnapshotStore(db, logger)

	refreshService := services.NewRefreshService(
		pickStore, seedStore, snapshotStore, cacheService, logger,
		cfg.Season, cutover, params, refreshInterval,
	)
	if err := refreshService.Start(!cfg.SkipInitialRefresh); err != nil {
		logrus.Errorf("Failed to start refresh service: %v", err)
	}
	defer refreshService.Stop()

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, cfg, pickStore, snapshotStore, cacheService, refreshService)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
