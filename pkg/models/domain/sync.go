package domain

import "time"

type SyncStatus string

const (
	SyncStatusRunning   SyncStatus = "RUNNING"
	SyncStatusCompleted SyncStatus = "COMPLETED"
	SyncStatusFailed    SyncStatus = "FAILED"
)

type SyncLog struct {
	ID             string
	OrganizationID string
	Status         SyncStatus
	Error          *string
	NodesSynced    int
	EdgesSynced    int
	StartedAt      time.Time
	FinishedAt     time.Time
}
