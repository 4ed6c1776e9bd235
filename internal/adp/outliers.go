package adp

import "math"

// lowVarianceFloor is the population std dev (in pick slots) below which a
// player's picks are considered legitimately tight and never filtered.
const lowVarianceFloor = 5.0

// filterOutliers removes anomalous pick numbers. Sets with fewer than 3
// observations or with a population std dev under lowVarianceFloor pass
// through untouched so tight consensus players are never over-pruned.
//
// Each observation is judged against the mean and spread of the OTHER
// observations. An extreme pick inflates the whole set's std dev enough to
// hide inside a plain z-score test (with n observations the largest possible
// z is sqrt(n-1)), so the deviation baseline must exclude the point being
// tested. Returns the surviving picks and the number removed.
func filterOutliers(picks []int, thresholdStdDevs float64) ([]int, int) {
	if len(picks) < 3 {
		return picks, 0
	}
	if popStdDev(picks) < lowVarianceFloor {
		return picks, 0
	}

	kept := make([]int, 0, len(picks))
	others := make([]int, 0, len(picks)-1)
	for i, p := range picks {
		others = others[:0]
		others = append(others, picks[:i]...)
		others = append(others, picks[i+1:]...)
		m := mean(others)
		limit := thresholdStdDevs * popStdDev(others)
		if math.Abs(float64(p)-m) <= limit {
			kept = append(kept, p)
		}
	}
	return kept, len(picks) - len(kept)
}
