package churn

import (
	"math"
	"sort"
	"time"
)

// Observation is a dated value fed to Trend.
type Observation struct {
	At    time.Time
	Value float64
}

// Trend returns the tanh-bounded OLS slope of the observations against
// their rank once sorted by date. Fewer than two observations yield 0.
//
// Rank is used instead of elapsed time, so irregular spacing between
// records is ignored.
func Trend(obs []Observation) float64 {
	n := len(obs)
	if n < 2 {
		return 0
	}
	sorted := make([]Observation, n)
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })

	var sumX, sumY, sumXY, sumXX float64
	for i, o := range sorted {
		x := float64(i)
		sumX += x
		sumY += o.Value
		sumXY += x * o.Value
		sumXX += x * x
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	return math.Tanh(slope)
}
