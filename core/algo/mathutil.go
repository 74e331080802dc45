package algo

import (
	"math"
	"math/big"
)

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// round2 rounds the exact binary value of v to two decimal places, with halves
// going away from zero. 2.675 is stored just below the half and gives 2.67.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r := new(big.Rat).SetFloat64(math.Abs(v))
	r.Mul(r, big.NewRat(100, 1)).Add(r, big.NewRat(1, 2))
	n := new(big.Int).Quo(r.Num(), r.Denom())
	out, _ := new(big.Rat).SetFrac(n, big.NewInt(100)).Float64()
	return math.Copysign(out, v)
}

// roundHalfUp rounds x.5 toward positive infinity, which is how point totals are reported.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// safeDiv returns n/d, or fallback when d is not positive.
func safeDiv(n, d, fallback float64) float64 {
	if d > 0 {
		return n / d
	}
	return fallback
}
