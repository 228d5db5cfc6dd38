package api

import "time"

type UpcomingDeadline struct {
	BriefID    string    `json:"briefId"`
	Title      string    `json:"title"`
	ClientName string    `json:"clientName"`
	Status     string    `json:"status"`
	Deadline   time.Time `json:"deadline"`
	DaysUntil  int       `json:"daysUntil"`
	IsOverdue  bool      `json:"isOverdue"`
}

type ActivityItem struct {
	BriefID    string    `json:"briefId"`
	Title      string    `json:"title"`
	ClientName string    `json:"clientName"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type RealTimeMetrics struct {
	BriefsInProgress   int64              `json:"briefsInProgress"`
	BriefsInReview     int64              `json:"briefsInReview"`
	BriefsPending      int64              `json:"briefsPending"`
	BriefsOverdue      int64              `json:"briefsOverdue"`
	ActiveUsers        int64              `json:"activeUsers"`
	HoursToday         float64            `json:"hoursToday"`
	BillableHoursToday float64            `json:"billableHoursToday"`
	UpcomingDeadlines  []UpcomingDeadline `json:"upcomingDeadlines"`
	RecentActivity     []ActivityItem     `json:"recentActivity"`
	GeneratedAt        time.Time          `json:"generatedAt"`
}

// PeriodMetrics reports RevisionRate as null when it cannot be measured.
type PeriodMetrics struct {
	Period                string    `json:"period"`
	Range                 DateRange `json:"range"`
	BriefsCreated         int64     `json:"briefsCreated"`
	BriefsCompleted       int64     `json:"briefsCompleted"`
	AvgTurnaroundDays     float64   `json:"avgTurnaroundDays"`
	OnTimeDeliveryRate    int       `json:"onTimeDeliveryRate"`
	TotalHours            float64   `json:"totalHours"`
	BillableHours         float64   `json:"billableHours"`
	ClientSatisfactionAvg float64   `json:"clientSatisfactionAvg"`
	RevisionRate          *float64  `json:"revisionRate"`
}

type PeriodChanges struct {
	BriefsCreated         int64    `json:"briefsCreated"`
	BriefsCompleted       int64    `json:"briefsCompleted"`
	AvgTurnaroundDays     float64  `json:"avgTurnaroundDays"`
	OnTimeDeliveryRate    int      `json:"onTimeDeliveryRate"`
	TotalHours            float64  `json:"totalHours"`
	BillableHours         float64  `json:"billableHours"`
	ClientSatisfactionAvg float64  `json:"clientSatisfactionAvg"`
	RevisionRate          *float64 `json:"revisionRate"`
}

type PeriodComparison struct {
	CurrentPeriod  PeriodMetrics `json:"currentPeriod"`
	PreviousPeriod PeriodMetrics `json:"previousPeriod"`
	Changes        PeriodChanges `json:"changes"`
}

type Client struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
}

type BriefTypeShare struct {
	Type       string `json:"type"`
	Count      int64  `json:"count"`
	Percentage int    `json:"percentage"`
}

type MonthlyTrendPoint struct {
	Month           string  `json:"month"`
	BriefsCreated   int64   `json:"briefsCreated"`
	BriefsCompleted int64   `json:"briefsCompleted"`
	Hours           float64 `json:"hours"`
}

type TeamAllocation struct {
	UserID            string  `json:"userId"`
	Name              string  `json:"name"`
	Hours             float64 `json:"hours"`
	PercentageOfTotal int     `json:"percentageOfTotal"`
}

type ClientAnalytics struct {
	Client         Client              `json:"client"`
	RealTime       RealTimeMetrics     `json:"realTime"`
	Comparison     PeriodComparison    `json:"comparison"`
	BriefTypes     []BriefTypeShare    `json:"briefTypes"`
	Trend          []MonthlyTrendPoint `json:"trend"`
	TeamAllocation []TeamAllocation    `json:"teamAllocation"`
	TotalTeamHours float64             `json:"totalTeamHours"`
}

type FactorCorrelation struct {
	Factor1      string  `json:"factor1"`
	Factor2      string  `json:"factor2"`
	Correlation  float64 `json:"correlation"`
	SampleSize   int     `json:"sampleSize"`
	Significance string  `json:"significance"`
}

type PerformanceDriver struct {
	Metric         string  `json:"metric"`
	Current        float64 `json:"current"`
	Previous       float64 `json:"previous"`
	ChangePercent  float64 `json:"changePercent"`
	Trend          string  `json:"trend"`
	Recommendation string  `json:"recommendation,omitempty"`
}

type Bottleneck struct {
	Status          string   `json:"status"`
	AvgWaitHours    float64  `json:"avgWaitHours"`
	BriefCount      int      `json:"briefCount"`
	AffectedClients []string `json:"affectedClients"`
}

type CapacityForecastPoint struct {
	Week                string   `json:"week"`
	ProjectedBriefs     float64  `json:"projectedBriefs"`
	AvailableCapacity   float64  `json:"availableCapacity"`
	UtilizationForecast float64  `json:"utilizationForecast"`
	Risk                Severity `json:"risk"`
}

type MultiFactorAnalysis struct {
	Period             DateRange               `json:"period"`
	Correlations       []FactorCorrelation     `json:"correlations"`
	PerformanceDrivers []PerformanceDriver     `json:"performanceDrivers"`
	Bottlenecks        []Bottleneck            `json:"bottlenecks"`
	CapacityForecast   []CapacityForecastPoint `json:"capacityForecast"`
	GeneratedAt        time.Time               `json:"generatedAt"`
}
