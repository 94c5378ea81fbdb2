package analytics

import "math"

// Seed multipliers per generated figure. Distinct values keep the series
// from sharing pseudo-random draws.
const (
	seedDailyBase     = 17
	seedDailyUnique   = 23
	seedDailyWatch    = 31
	seedEpisode       = 1337
	seedStateSpread   = 777
	seedTrafficSpread = 555
)

// SeededRandom maps a seed to a stable value in [0, 1).
// It is for fabricating demo figures only and is not unpredictable.
func SeededRandom(seed float64) float64 {
	x := math.Sin(seed*9999) * 10000
	return x - math.Floor(x)
}
