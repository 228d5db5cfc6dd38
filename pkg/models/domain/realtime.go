package domain

import "time"

type BriefStatus string

const (
	BriefStatusDraft      BriefStatus = "DRAFT"
	BriefStatusPending    BriefStatus = "PENDING"
	BriefStatusInProgress BriefStatus = "IN_PROGRESS"
	BriefStatusInReview   BriefStatus = "IN_REVIEW"
	BriefStatusCompleted  BriefStatus = "COMPLETED"
	BriefStatusCancelled  BriefStatus = "CANCELLED"
)

// OpenStatuses lists the non-terminal statuses in workflow order.
var OpenStatuses = []BriefStatus{
	BriefStatusDraft,
	BriefStatusPending,
	BriefStatusInProgress,
	BriefStatusInReview,
}

func (s BriefStatus) IsTerminal() bool {
	return s == BriefStatusCompleted || s == BriefStatusCancelled
}

type UpcomingDeadline struct {
	BriefID    string
	Title      string
	ClientName string
	Status     BriefStatus
	Deadline   time.Time
	DaysUntil  int
	IsOverdue  bool
}

type ActivityItem struct {
	BriefID    string
	Title      string
	ClientName string
	Status     BriefStatus
	UpdatedAt  time.Time
}

// RealTimeMetrics is a "right now" snapshot of an organization or client.
type RealTimeMetrics struct {
	BriefsInProgress   int64
	BriefsInReview     int64
	BriefsPending      int64
	BriefsOverdue      int64
	ActiveUsers        int64
	HoursToday         float64
	BillableHoursToday float64
	UpcomingDeadlines  []UpcomingDeadline
	RecentActivity     []ActivityItem
	GeneratedAt        time.Time
}
