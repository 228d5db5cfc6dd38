package analysis

import (
	"testing"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{name: "self correlation", x: []float64{1, 4, 2, 8, 5}, y: []float64{1, 4, 2, 8, 5}, want: 1},
		{name: "perfect negative", x: []float64{1, 2, 3}, y: []float64{3, 2, 1}, want: -1},
		{name: "constant vector", x: []float64{1, 2, 3}, y: []float64{7, 7, 7}, want: 0},
		{name: "empty", x: nil, y: nil, want: 0},
		{name: "length mismatch", x: []float64{1, 2}, y: []float64{1}, want: 0},
		{name: "rounded to two decimals", x: []float64{1, 2, 3, 4}, y: []float64{2, 1, 4, 3}, want: 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pearson(tt.x, tt.y))
		})
	}
}

func TestSignificanceFor(t *testing.T) {
	assert.Equal(t, domain.SignificanceLow, SignificanceFor(6))
	assert.Equal(t, domain.SignificanceLow, SignificanceFor(10))
	assert.Equal(t, domain.SignificanceMedium, SignificanceFor(11))
	assert.Equal(t, domain.SignificanceMedium, SignificanceFor(30))
	assert.Equal(t, domain.SignificanceHigh, SignificanceFor(31))
}

func TestTrendFor(t *testing.T) {
	assert.Equal(t, domain.TrendImproving, TrendFor(106, 100))
	assert.Equal(t, domain.TrendStable, TrendFor(105, 100))
	assert.Equal(t, domain.TrendStable, TrendFor(95, 100))
	assert.Equal(t, domain.TrendDeclining, TrendFor(94, 100))
	assert.Equal(t, domain.TrendImproving, TrendFor(3, 0))
}

func TestRiskFor(t *testing.T) {
	tests := []struct {
		utilization float64
		want        domain.Severity
	}{
		{95, domain.SeverityHigh},
		{75, domain.SeverityMedium},
		{50, domain.SeverityLow},
		{160, domain.SeverityHigh},
		{90, domain.SeverityMedium},
		{70, domain.SeverityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskFor(tt.utilization), "utilization %v", tt.utilization)
	}
}
