package adp

import "math"

func mean(picks []int) float64 {
	if len(picks) == 0 {
		return 0
	}
	sum := 0
	for _, p := range picks {
		sum += p
	}
	return float64(sum) / float64(len(picks))
}

// popStdDev is the population standard deviation. Pools are the entire
// observed population for the window, not a sample.
func popStdDev(picks []int) float64 {
	if len(picks) < 2 {
		return 0
	}
	m := mean(picks)
	var ss float64
	for _, p := range picks {
		d := float64(p) - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(picks)))
}

// round1 rounds to one decimal, the precision the snapshot contract exposes.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
