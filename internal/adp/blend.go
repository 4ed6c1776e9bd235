package adp

import "time"

// fastAdoptionBoost deliberately over-weights the newer fast format so the
// blend converges toward it as adoption grows. Tuned, not derived.
const fastAdoptionBoost = 1.5

// BlendDecision is the run-global choice of pool weighting. It is computed
// once from platform-wide pick volume, never per player, so the ratio tracks
// format adoption rather than per-player sample noise.
type BlendDecision struct {
	Mode       BlendMode
	SlowWeight float64
	FastWeight float64
}

// selectBlendMode decides how the two pools combine. Before the fast-format
// launch instant the fast pool is ignored entirely regardless of its volume.
// After launch, a fast pool at or above slow volume takes over outright
// (ties go to fast); otherwise the two are blended with the fast side
// boosted.
func selectBlendMode(slowTotal, fastTotal int, now, formatCutover time.Time) BlendDecision {
	if now.Before(formatCutover) {
		return BlendDecision{Mode: BlendSlowOnly, SlowWeight: 1}
	}
	if fastTotal == 0 {
		return BlendDecision{Mode: BlendSlowOnly, SlowWeight: 1}
	}
	if fastTotal >= slowTotal {
		return BlendDecision{Mode: BlendFastOnly, FastWeight: 1}
	}

	boosted := float64(fastTotal) * fastAdoptionBoost
	fastWeight := boosted / (float64(slowTotal) + boosted)
	return BlendDecision{
		Mode:       BlendBoth,
		SlowWeight: 1 - fastWeight,
		FastWeight: fastWeight,
	}
}
