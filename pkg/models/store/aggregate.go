package store

import "time"

type HoursTotals struct {
	Total    float64
	Billable float64
}

type Average struct {
	Value   float64
	Samples int64
}

type SyncLogRecord struct {
	ID             string
	OrganizationID string
	Status         string
	Error          *string
	NodesSynced    int
	EdgesSynced    int
	StartedAt      time.Time
	FinishedAt     time.Time
}
