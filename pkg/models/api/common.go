package api

import "time"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
