package adp

import (
	"fmt"
	"sort"
	"time"
)

// AlgorithmVersion is recorded in every snapshot so consumers can tell which
// revision of the math produced it. Bump on any behavior change.
const AlgorithmVersion = "2.1.0"

// Input is everything one computation run reads. The caller supplies Now
// explicitly; the pipeline never consults a clock, so identical inputs always
// produce identical rankings.
type Input struct {
	Now           time.Time
	Season        string
	Events        []PickEvent
	Seed          SeedPrior
	Params        Parameters
	FormatCutover time.Time
	Previous      *Snapshot // optional, only used for change_from_previous
}

// BuildSnapshot runs the full pipeline: age window, per-pool aggregation,
// blend mode selection, per-player combination, confidence blending, and
// metadata assembly. Empty inputs produce an empty snapshot with zero totals,
// not an error; the only error is a rejected Parameters configuration.
func BuildSnapshot(in Input) (Snapshot, error) {
	if err := in.Params.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("invalid parameters: %w", err)
	}
	started := time.Now()

	windowed := filterToWindow(in.Events, in.Now, in.Params.MaxAgeDays)

	var slowEvents, fastEvents []PickEvent
	for _, ev := range windowed {
		switch ev.Format {
		case FormatSlow:
			slowEvents = append(slowEvents, ev)
		case FormatFast:
			fastEvents = append(fastEvents, ev)
		}
	}

	slowPool, slowOutliers := aggregatePool(slowEvents, in.Now, in.Params)
	fastPool, fastOutliers := aggregatePool(fastEvents, in.Now, in.Params)

	decision := selectBlendMode(len(slowEvents), len(fastEvents), in.Now, in.FormatCutover)

	players := make(map[string]PlayerResult)
	seedOnlyCount, blendedCount := 0, 0

	for _, playerID := range candidatePlayers(slowPool, fastPool, in.Seed) {
		var slow, fast *PoolResult
		if r, ok := slowPool[playerID]; ok {
			slow = &r
		}
		if r, ok := fastPool[playerID]; ok {
			fast = &r
		}
		seedADP, hasSeed := in.Seed.Values[playerID]

		combined, ok := combinePlayer(decision, slow, fast, seedADP, hasSeed)
		if !ok {
			continue
		}
		if combined.seedOnly {
			seedOnlyCount++
		}
		if combined.blended {
			blendedCount++
		}

		finalADP := blendWithSeed(combined.rawADP, combined.pickCount, seedADP, hasSeed, in.Params)

		result := PlayerResult{
			ADP:       round1(finalADP),
			PickCount: combined.pickCount,
			BestPick:  combined.bestPick,
			WorstPick: combined.worstPick,
			StdDev:    round1(combined.stdDev),
		}
		if in.Previous != nil {
			if prev, ok := in.Previous.Players[playerID]; ok {
				result.ChangeFromPrevious = round1(result.ADP - prev.ADP)
			}
		}
		players[playerID] = result
	}

	meta := SnapshotMetadata{
		GeneratedAt:        in.Now,
		Season:             in.Season,
		AlgorithmVersion:   AlgorithmVersion,
		BlendMode:          decision.Mode,
		SlowWeight:         decision.SlowWeight,
		FastWeight:         decision.FastWeight,
		TotalSlowPicks:     len(slowEvents),
		TotalFastPicks:     len(fastEvents),
		DistinctDraftCount: distinctDrafts(windowed),
		ObservedDateRange:  observedRange(windowed),
		Parameters:         in.Params,
		Stats: RunStats{
			EventsProcessed: len(windowed),
			OutliersRemoved: slowOutliers + fastOutliers,
			SeedOnlyPlayers: seedOnlyCount,
			BlendedPlayers:  blendedCount,
			ExecutionTimeMs: time.Since(started).Milliseconds(),
		},
	}

	return Snapshot{Metadata: meta, Players: players}, nil
}

// filterToWindow drops events older than maxAgeDays relative to now. Events
// with an unknown format tag are dropped too; ingest validation should have
// rejected them already.
func filterToWindow(events []PickEvent, now time.Time, maxAgeDays int) []PickEvent {
	cutoff := now.AddDate(0, 0, -maxAgeDays)
	kept := make([]PickEvent, 0, len(events))
	for _, ev := range events {
		if ev.Format.Valid() && !ev.PickedAt.Before(cutoff) {
			kept = append(kept, ev)
		}
	}
	return kept
}

// candidatePlayers returns the union of player IDs across both pools and the
// seed prior, sorted for deterministic iteration.
func candidatePlayers(slowPool, fastPool map[string]PoolResult, seed SeedPrior) []string {
	seen := make(map[string]struct{}, len(slowPool)+len(fastPool)+len(seed.Values))
	for id := range slowPool {
		seen[id] = struct{}{}
	}
	for id := range fastPool {
		seen[id] = struct{}{}
	}
	for id := range seed.Values {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func distinctDrafts(events []PickEvent) int {
	drafts := make(map[string]struct{}, len(events))
	for _, ev := range events {
		drafts[ev.DraftID] = struct{}{}
	}
	return len(drafts)
}

func observedRange(events []PickEvent) *DateRange {
	if len(events) == 0 {
		return nil
	}
	r := DateRange{Start: events[0].PickedAt, End: events[0].PickedAt}
	for _, ev := range events[1:] {
		if ev.PickedAt.Before(r.Start) {
			r.Start = ev.PickedAt
		}
		if ev.PickedAt.After(r.End) {
			r.End = ev.PickedAt
		}
	}
	return &r
}
