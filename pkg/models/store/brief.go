package store

import (
	"database/sql"
	"time"
)

type DeadlineRow struct {
	BriefID    string
	Title      string
	ClientName string
	Status     string
	Deadline   time.Time
}

type ActivityRow struct {
	BriefID    string
	Title      string
	ClientName string
	Status     string
	UpdatedAt  time.Time
}

// CompletedBriefRow is one brief completed inside a reporting window together
// with the per-brief figures the analysis engine correlates.
type CompletedBriefRow struct {
	BriefID     string
	CreatedAt   time.Time
	CompletedAt time.Time
	Deadline    sql.NullTime
	HoursLogged float64
	TeamSize    int64
	Feedback    sql.NullFloat64
}

type OpenBriefRow struct {
	BriefID    string
	Status     string
	UpdatedAt  time.Time
	ClientName string
}

type TypeCount struct {
	BriefType string
	Count     int64
}

type MonthlyRow struct {
	Month     time.Time
	Created   int64
	Completed int64
	Hours     float64
}

type WeeklyCount struct {
	WeekStart time.Time
	Count     int64
}

type BriefRow struct {
	ID         string
	ClientID   string
	Title      string
	BriefType  string
	Status     string
	AssigneeID sql.NullString
	Deadline   sql.NullTime
	CreatedAt  time.Time
}

type BriefSkillRow struct {
	BriefID string
	Skill   string
	Open    bool
}
