package synclog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/store/postgres"
)

type Store interface {
	Add(ctx context.Context, record store.SyncLogRecord) error
	// Latest returns the most recent sync of the organization or domain.ErrNotFound.
	Latest(ctx context.Context, organizationID string) (*store.SyncLogRecord, error)
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) Add(ctx context.Context, record store.SyncLogRecord) error {
	query := `
		INSERT INTO graph_sync_logs (
			id, organization_id, status, error, nodes_synced, edges_synced, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := postgres.ExecerFor(ctx, s.db).ExecContext(ctx, query,
		record.ID,
		record.OrganizationID,
		record.Status,
		record.Error,
		record.NodesSynced,
		record.EdgesSynced,
		record.StartedAt,
		record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sync log %s: %w", record.ID, err)
	}
	return nil
}

func (s *defaultStore) Latest(ctx context.Context, organizationID string) (*store.SyncLogRecord, error) {
	query := `
		SELECT id, organization_id, status, error, nodes_synced, edges_synced, started_at, finished_at
		FROM graph_sync_logs
		WHERE organization_id = $1
		ORDER BY started_at DESC
		LIMIT 1
	`
	var (
		record  store.SyncLogRecord
		errText sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, organizationID).Scan(
		&record.ID,
		&record.OrganizationID,
		&record.Status,
		&errText,
		&record.NodesSynced,
		&record.EdgesSynced,
		&record.StartedAt,
		&record.FinishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sync log for %s: %w", organizationID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("latest sync log: %w", err)
	}
	if errText.Valid {
		record.Error = &errText.String
	}
	return &record, nil
}
