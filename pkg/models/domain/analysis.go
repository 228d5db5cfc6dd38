package domain

import "time"

type Significance string

const (
	SignificanceLow    Significance = "low"
	SignificanceMedium Significance = "medium"
	SignificanceHigh   Significance = "high"
)

type FactorCorrelation struct {
	Factor1      string
	Factor2      string
	Correlation  float64
	SampleSize   int
	Significance Significance
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

type PerformanceDriver struct {
	Metric         string
	Current        float64
	Previous       float64
	ChangePercent  float64
	Trend          Trend
	Recommendation string
}

type Bottleneck struct {
	Status          BriefStatus
	AvgWaitHours    float64
	BriefCount      int
	AffectedClients []string
}

type CapacityForecastPoint struct {
	Week                string
	WeekStart           time.Time
	ProjectedBriefs     float64
	AvailableCapacity   float64
	UtilizationForecast float64
	Risk                Severity
}

type MultiFactorAnalysis struct {
	Period             DateRange
	Correlations       []FactorCorrelation
	PerformanceDrivers []PerformanceDriver
	Bottlenecks        []Bottleneck
	CapacityForecast   []CapacityForecastPoint
	GeneratedAt        time.Time
}
