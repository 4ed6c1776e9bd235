package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Projection is one player's preseason projection from the external feed.
type Projection struct {
	PlayerID      string  `json:"player_id"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	Team          string  `json:"team"`
	FantasyPoints float64 `json:"fantasy_points"`
	PositionRank  int     `json:"position_rank"`
}

type projectionsResponse struct {
	Season      string       `json:"season"`
	Source      string       `json:"source"`
	Projections []Projection `json:"projections"`
}

// CacheProvider is the subset of the cache the client needs.
type CacheProvider interface {
	SetSimple(key string, value interface{}, expiration time.Duration) error
	GetSimple(key string, dest interface{}) error
}

// ProjectionsClient fetches preseason player projections used to build the
// seed prior. The feed is a third party, so calls go through a circuit
// breaker and responses are cached aggressively; projections change at most
// daily.
type ProjectionsClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	cache      CacheProvider
	logger     *logrus.Logger
}

func NewProjectionsClient(baseURL string, timeout time.Duration, cache CacheProvider, logger *logrus.Logger) *ProjectionsClient {
	settings := gobreaker.Settings{
		Name:    "projections-feed",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &ProjectionsClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		cache:      cache,
		logger:     logger,
	}
}

// GetProjections fetches the season's projections, serving from cache when
// possible.
func (c *ProjectionsClient) GetProjections(ctx context.Context, season string) ([]Projection, error) {
	cacheKey := fmt.Sprintf("projections:%s", season)

	var cached []Projection
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, season)
	})
	if err != nil {
		return nil, fmt.Errorf("projections feed unavailable: %w", err)
	}

	projections := result.([]Projection)
	if len(projections) > 0 {
		if err := c.cache.SetSimple(cacheKey, projections, 6*time.Hour); err != nil {
			c.logger.Warnf("Failed to cache projections: %v", err)
		}
	}
	return projections, nil
}

func (c *ProjectionsClient) fetch(ctx context.Context, season string) ([]Projection, error) {
	url := fmt.Sprintf("%s/v1/projections?season=%s", c.baseURL, season)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("projections feed returned status %d", resp.StatusCode)
	}

	var body projectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode projections: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"season":  season,
		"source":  body.Source,
		"players": len(body.Projections),
	}).Info("Fetched projections feed")
	return body.Projections, nil
}
