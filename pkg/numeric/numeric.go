// Package numeric holds the rounding and ratio rules shared by every report.
package numeric

import "math"

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func Round1(v float64) float64 { return Round(v, 1) }

func Round2(v float64) float64 { return Round(v, 2) }

// Percent returns part/whole as an integer percentage, or 0 when whole is 0.
func Percent(part, whole float64) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

// ChangePercent is (current - previous) / previous as a one-decimal
// percentage, 0 when there is no previous value.
func ChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return Round1((current - previous) / previous * 100)
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
