package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const OrganizationsSchema = `
	CREATE TABLE IF NOT EXISTS organizations (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL
	);
`

const UsersSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR PRIMARY KEY,
		organization_id VARCHAR NOT NULL REFERENCES organizations (id),
		name VARCHAR NOT NULL,
		email VARCHAR NOT NULL,
		department VARCHAR NOT NULL DEFAULT '',
		weekly_capacity_hours DOUBLE PRECISION NOT NULL DEFAULT 40,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const ClientsSchema = `
	CREATE TABLE IF NOT EXISTS clients (
		id VARCHAR PRIMARY KEY,
		organization_id VARCHAR NOT NULL REFERENCES organizations (id),
		name VARCHAR NOT NULL,
		industry VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const BriefsSchema = `
	CREATE TABLE IF NOT EXISTS briefs (
		id VARCHAR PRIMARY KEY,
		organization_id VARCHAR NOT NULL REFERENCES organizations (id),
		client_id VARCHAR NOT NULL REFERENCES clients (id),
		title VARCHAR NOT NULL,
		brief_type VARCHAR NOT NULL DEFAULT 'general',
		status VARCHAR NOT NULL,
		assignee_id VARCHAR NULL REFERENCES users (id),
		deadline TIMESTAMPTZ NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		completed_at TIMESTAMPTZ NULL
	);
`

const TimeEntriesSchema = `
	CREATE TABLE IF NOT EXISTS time_entries (
		id VARCHAR PRIMARY KEY,
		organization_id VARCHAR NOT NULL REFERENCES organizations (id),
		user_id VARCHAR NOT NULL REFERENCES users (id),
		brief_id VARCHAR NULL REFERENCES briefs (id),
		hours DOUBLE PRECISION NOT NULL,
		billable BOOLEAN NOT NULL DEFAULT FALSE,
		entry_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const ClientFeedbackSchema = `
	CREATE TABLE IF NOT EXISTS client_feedback (
		id VARCHAR PRIMARY KEY,
		organization_id VARCHAR NOT NULL REFERENCES organizations (id),
		client_id VARCHAR NOT NULL REFERENCES clients (id),
		brief_id VARCHAR NULL REFERENCES briefs (id),
		score DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const SkillsSchema = `
	CREATE TABLE IF NOT EXISTS user_skills (
		user_id VARCHAR NOT NULL REFERENCES users (id),
		skill VARCHAR NOT NULL,
		level INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (user_id, skill)
	);
	CREATE TABLE IF NOT EXISTS brief_skills (
		brief_id VARCHAR NOT NULL REFERENCES briefs (id),
		skill VARCHAR NOT NULL,
		PRIMARY KEY (brief_id, skill)
	);
`

const GraphSyncLogSchema = `
	CREATE TABLE IF NOT EXISTS graph_sync_logs (
		id VARCHAR PRIMARY KEY,
		organization_id VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		error TEXT NULL,
		nodes_synced INTEGER NOT NULL DEFAULT 0,
		edges_synced INTEGER NOT NULL DEFAULT 0,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	);
`

var bootQueries = []string{
	OrganizationsSchema,
	UsersSchema,
	ClientsSchema,
	BriefsSchema,
	TimeEntriesSchema,
	ClientFeedbackSchema,
	SkillsSchema,
	GraphSyncLogSchema,
}

type Settings struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// Bootstrap creates missing tables; meant for local development and tests.
	Bootstrap bool
}

func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if settings.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}

	db, err := sql.Open("postgres", settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if settings.MaxOpenConns > 0 {
		db.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.MaxIdleConns > 0 {
		db.SetMaxIdleConns(settings.MaxIdleConns)
	}
	if settings.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(settings.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if settings.Bootstrap {
		if err := Bootstrap(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

// Bootstrap runs the schema boot queries in one transaction, so a failure
// leaves no partially created schema behind.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	return InTransaction(ctx, db, func(ctx context.Context) error {
		for _, query := range bootQueries {
			if _, err := ExecerFor(ctx, db).ExecContext(ctx, query); err != nil {
				return fmt.Errorf("bootstrap schema: %w", err)
			}
		}
		return nil
	})
}
