package analysis

import (
	"math"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/numeric"
)

// Pearson returns the product-moment correlation of x and y rounded to two
// decimals. Degenerate input (empty, unequal lengths, zero variance) yields 0.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n == 0 || n != len(y) {
		return 0
	}

	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	fn := float64(n)
	denominator := math.Sqrt((fn*sumX2 - sumX*sumX) * (fn*sumY2 - sumY*sumY))
	if denominator == 0 || math.IsNaN(denominator) {
		return 0
	}
	r := (fn*sumXY - sumX*sumY) / denominator
	// floating point error can push |r| marginally past 1
	return numeric.Round2(math.Max(-1, math.Min(1, r)))
}

// SignificanceFor labels a reported sample size.
func SignificanceFor(n int) domain.Significance {
	switch {
	case n > 30:
		return domain.SignificanceHigh
	case n > 10:
		return domain.SignificanceMedium
	default:
		return domain.SignificanceLow
	}
}

// TrendFor compares current against previous with a ±5% dead band.
func TrendFor(current, previous float64) domain.Trend {
	switch {
	case current > previous*1.05:
		return domain.TrendImproving
	case current < previous*0.95:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// RiskFor bands an uncapped utilization percentage.
func RiskFor(utilization float64) domain.Severity {
	switch {
	case utilization > 90:
		return domain.SeverityHigh
	case utilization > 70:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
