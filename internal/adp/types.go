package adp

import (
	"fmt"
	"time"
)

// Format identifies which draft product a pick came from.
type Format string

const (
	FormatSlow Format = "slow"
	FormatFast Format = "fast"
)

// Valid reports whether the format tag is one we aggregate.
func (f Format) Valid() bool {
	return f == FormatSlow || f == FormatFast
}

// PickEvent is a single observed draft pick. Events are produced by the draft
// rooms and are read-only here.
type PickEvent struct {
	PlayerID   string    `json:"player_id"`
	PickNumber int       `json:"pick_number"` // 1-based position within its own draft
	PickedAt   time.Time `json:"picked_at"`
	DraftID    string    `json:"draft_id"`
	Format     Format    `json:"format"`
}

// SeedPrior is an externally supplied baseline ranking used to stabilize
// players with thin live data.
type SeedPrior struct {
	Season      string             `json:"season"`
	Description string             `json:"description"`
	Values      map[string]float64 `json:"values"` // player ID -> prior ADP
}

// Parameters are the tunables for a single computation run.
type Parameters struct {
	DecayDays               float64 `json:"decay_days"`
	MinPicksForConfidence   int     `json:"min_picks_for_confidence"`
	OutlierThresholdStdDevs float64 `json:"outlier_threshold_std_devs"`
	MaxAgeDays              int     `json:"max_age_days"`
	SeedBlendRatio          float64 `json:"seed_blend_ratio"`
}

// DefaultParameters returns the reference tuning.
func DefaultParameters() Parameters {
	return Parameters{
		DecayDays:               7,
		MinPicksForConfidence:   50,
		OutlierThresholdStdDevs: 2.5,
		MaxAgeDays:              30,
		SeedBlendRatio:          0.5,
	}
}

// Validate rejects configurations that would make the math meaningless.
// Bad parameters are a configuration error and must be caught before a run.
func (p Parameters) Validate() error {
	if p.DecayDays <= 0 {
		return fmt.Errorf("decay_days must be positive, got %v", p.DecayDays)
	}
	if p.MinPicksForConfidence <= 0 {
		return fmt.Errorf("min_picks_for_confidence must be positive, got %d", p.MinPicksForConfidence)
	}
	if p.OutlierThresholdStdDevs <= 0 {
		return fmt.Errorf("outlier_threshold_std_devs must be positive, got %v", p.OutlierThresholdStdDevs)
	}
	if p.MaxAgeDays <= 0 {
		return fmt.Errorf("max_age_days must be positive, got %d", p.MaxAgeDays)
	}
	if p.SeedBlendRatio < 0 || p.SeedBlendRatio > 1 {
		return fmt.Errorf("seed_blend_ratio must be in [0,1], got %v", p.SeedBlendRatio)
	}
	return nil
}

// PoolResult is the per-player aggregate for one format pool. Computed fresh
// each run, never persisted.
type PoolResult struct {
	WeightedADP float64
	PickCount   int
	BestPick    int
	WorstPick   int
	StdDev      float64
}

// BlendMode is the run-global choice of which pool(s) drive the final ADP.
type BlendMode string

const (
	BlendSlowOnly BlendMode = "slow_only"
	BlendFastOnly BlendMode = "fast_only"
	BlendBoth     BlendMode = "blended"
)

// PlayerResult is the final per-player entry in a snapshot.
type PlayerResult struct {
	ADP                float64 `json:"adp"`
	PickCount          int     `json:"pick_count"`
	BestPick           int     `json:"best_pick"`
	WorstPick          int     `json:"worst_pick"`
	StdDev             float64 `json:"std_dev"`
	ChangeFromPrevious float64 `json:"change_from_previous"`
}

// DateRange is the observed timestamp span of the events that fed a run.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RunStats carries provenance counters for one computation run.
type RunStats struct {
	EventsProcessed int   `json:"events_processed"`
	OutliersRemoved int   `json:"outliers_removed"`
	SeedOnlyPlayers int   `json:"seed_only_players"`
	BlendedPlayers  int   `json:"blended_players"`
	ExecutionTimeMs int64 `json:"execution_time_ms"`
}

// SnapshotMetadata describes how a snapshot was produced.
type SnapshotMetadata struct {
	GeneratedAt        time.Time  `json:"generated_at"`
	Season             string     `json:"season"`
	AlgorithmVersion   string     `json:"algorithm_version"`
	BlendMode          BlendMode  `json:"blend_mode"`
	SlowWeight         float64    `json:"slow_weight"`
	FastWeight         float64    `json:"fast_weight"`
	TotalSlowPicks     int        `json:"total_slow_picks"`
	TotalFastPicks     int        `json:"total_fast_picks"`
	DistinctDraftCount int        `json:"distinct_draft_count"`
	ObservedDateRange  *DateRange `json:"observed_date_range,omitempty"`
	Parameters         Parameters `json:"parameters"`
	Stats              RunStats   `json:"stats"`
}

// Snapshot is the sole artifact the computation produces. Its field names and
// nesting are the compatibility surface consumed by the ranking UI and draft
// room defaults; bump AlgorithmVersion on behavior changes, not the shape.
type Snapshot struct {
	Metadata SnapshotMetadata        `json:"metadata"`
	Players  map[string]PlayerResult `json:"players"`
}
