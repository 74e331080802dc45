package algo

import "sort"

const (
	minPercentile     = 0.02
	maxPercentile     = 0.98
	neutralPercentile = 0.5
)

// PercentileRank returns the fractional position of value in an ascending slice,
// counting ties as half. The result is clamped to [0.02, 0.98]; an empty
// population yields the neutral 0.5.
func PercentileRank(sorted []float64, value float64) float64 {
	n := len(sorted)
	if n == 0 {
		return neutralPercentile
	}
	below := sort.SearchFloat64s(sorted, value)
	end := below
	for end < n && sorted[end] == value {
		end++
	}
	equal := end - below
	return clamp((float64(below)+float64(equal)*0.5)/float64(n), minPercentile, maxPercentile)
}

// To10 converts a 0-1 percentile to the 0-10 score scale.
func To10(pct float64) float64 {
	return round2(clamp(pct*10, 0, 10))
}
