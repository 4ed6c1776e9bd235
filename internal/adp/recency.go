package adp

import (
	"math"
	"time"
)

const hoursPerDay = 24.0

// recencyWeight returns exp(-age/decayDays) for an event picked at the given
// instant relative to now. Always in (0, 1], exactly 1 at age zero. Only the
// relative scale matters; the weights are normalized inside the weighted
// average.
func recencyWeight(pickedAt, now time.Time, decayDays float64) float64 {
	ageDays := now.Sub(pickedAt).Hours() / hoursPerDay
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp(-ageDays / decayDays)
}
