package adp

// adpSource names where a player's raw ADP comes from for this run. The
// decision is made up front by decideSource so every fallback case is
// enumerable and testable on its own, then applied by a single switch.
type adpSource int

const (
	sourceNone adpSource = iota // no usable data, player dropped
	sourceSeed                  // seed prior only
	sourceSlow                  // slow pool only
	sourceFast                  // fast pool only
	sourceBoth                  // weighted blend of both pools
)

// decideSource picks the data source for one player given the run's blend
// mode and which inputs the player actually has.
func decideSource(mode BlendMode, hasSlow, hasFast, hasSeed bool) adpSource {
	switch mode {
	case BlendSlowOnly:
		if hasSlow {
			return sourceSlow
		}
	case BlendFastOnly:
		if hasFast {
			return sourceFast
		}
	case BlendBoth:
		switch {
		case hasSlow && hasFast:
			return sourceBoth
		case hasSlow:
			return sourceSlow
		case hasFast:
			return sourceFast
		}
	}
	if hasSeed {
		return sourceSeed
	}
	return sourceNone
}

// combinedResult is a player's raw (pre-confidence-blend) combined value.
type combinedResult struct {
	rawADP    float64
	pickCount int
	bestPick  int
	worstPick int
	stdDev    float64
	seedOnly  bool
	blended   bool
}

// combinePlayer merges a player's pool results under the run's blend decision.
// The second return value is false when the player has no data anywhere and
// must be omitted from the snapshot.
func combinePlayer(decision BlendDecision, slow, fast *PoolResult, seedADP float64, hasSeed bool) (combinedResult, bool) {
	src := decideSource(decision.Mode, slow != nil, fast != nil, hasSeed)

	switch src {
	case sourceSlow:
		return fromPool(slow), true
	case sourceFast:
		return fromPool(fast), true
	case sourceBoth:
		best := slow.BestPick
		if fast.BestPick < best {
			best = fast.BestPick
		}
		worst := slow.WorstPick
		if fast.WorstPick > worst {
			worst = fast.WorstPick
		}
		return combinedResult{
			rawADP:    slow.WeightedADP*decision.SlowWeight + fast.WeightedADP*decision.FastWeight,
			pickCount: slow.PickCount + fast.PickCount,
			bestPick:  best,
			worstPick: worst,
			// the fast pool is the more current signal when both contribute
			stdDev:  fast.StdDev,
			blended: true,
		}, true
	case sourceSeed:
		return combinedResult{rawADP: seedADP, seedOnly: true}, true
	default:
		return combinedResult{}, false
	}
}

func fromPool(pool *PoolResult) combinedResult {
	return combinedResult{
		rawADP:    pool.WeightedADP,
		pickCount: pool.PickCount,
		bestPick:  pool.BestPick,
		worstPick: pool.WorstPick,
		stdDev:    pool.StdDev,
	}
}
