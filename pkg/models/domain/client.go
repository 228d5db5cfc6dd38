package domain

import "time"

type Client struct {
	ID       string
	Name     string
	Industry string
}

type BriefTypeShare struct {
	Type       string
	Count      int64
	Percentage int
}

type MonthlyTrendPoint struct {
	Month           time.Time
	Label           string
	BriefsCreated   int64
	BriefsCompleted int64
	Hours           float64
}

type TeamAllocation struct {
	UserID            string
	Name              string
	Hours             float64
	PercentageOfTotal int
}

type ClientAnalytics struct {
	Client         Client
	RealTime       RealTimeMetrics
	Comparison     PeriodComparison
	BriefTypes     []BriefTypeShare
	Trend          []MonthlyTrendPoint
	TeamAllocation []TeamAllocation
	TotalTeamHours float64
}
