package adp

// confidence measures how much observed data supports a computed ADP,
// saturating at 1 once pickCount reaches the configured threshold.
func confidence(pickCount, minPicksForConfidence int) float64 {
	c := float64(pickCount) / float64(minPicksForConfidence)
	if c > 1 {
		return 1
	}
	return c
}

// blendWithSeed pulls a low-sample ADP toward the seed prior. Players at full
// confidence, and players with no seed entry, keep their raw value. Applied
// uniformly as the final smoothing pass regardless of blend mode.
func blendWithSeed(rawADP float64, pickCount int, seedADP float64, hasSeed bool, params Parameters) float64 {
	if !hasSeed {
		return rawADP
	}
	c := confidence(pickCount, params.MinPicksForConfidence)
	if c >= 1 {
		return rawADP
	}
	seedWeight := (1 - c) * params.SeedBlendRatio
	return rawADP*(1-seedWeight) + seedADP*seedWeight
}
