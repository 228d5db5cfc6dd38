package aggregate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
)

func (s *defaultStore) GetClient(ctx context.Context, organizationID, clientID string) (*store.ClientRow, error) {
	query := `
		SELECT id, name, industry
		FROM clients
		WHERE organization_id = $1 AND id = $2
	`
	var c store.ClientRow
	err := s.db.QueryRowContext(ctx, query, organizationID, clientID).Scan(&c.ID, &c.Name, &c.Industry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %s: %w", clientID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (s *defaultStore) CountBriefsByType(ctx context.Context, f Filter, start, end time.Time) ([]store.TypeCount, error) {
	args := &queryArgs{}
	query := `
		SELECT b.brief_type, COUNT(*)
		FROM briefs b
		WHERE ` + f.briefScope("b", args) + `
			AND b.created_at >= ` + args.add(start) + `
			AND b.created_at <= ` + args.add(end) + `
		GROUP BY b.brief_type
		ORDER BY COUNT(*) DESC, b.brief_type ASC
	`
	rows, err := s.db.QueryContext(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("count briefs by type: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.TypeCount, 0)
	for rows.Next() {
		var r store.TypeCount
		if err := rows.Scan(&r.BriefType, &r.Count); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// MonthlyTrend returns one row per calendar month touched by [start, end],
// including months without any activity.
func (s *defaultStore) MonthlyTrend(ctx context.Context, f Filter, start, end time.Time) ([]store.MonthlyRow, error) {
	args := &queryArgs{}
	from := args.add(start)
	to := args.add(end)
	briefScope := f.briefScope("b", args)
	entryScope := f.entryScope(args)
	query := `
		WITH months AS (
			SELECT generate_series(
				date_trunc('month', ` + from + `::timestamptz),
				date_trunc('month', ` + to + `::timestamptz),
				interval '1 month'
			) AS month
		)
		SELECT
			m.month,
			(
				SELECT COUNT(*) FROM briefs b
				WHERE ` + briefScope + ` AND date_trunc('month', b.created_at) = m.month
			),
			(
				SELECT COUNT(*) FROM briefs b
				WHERE ` + briefScope + ` AND b.completed_at IS NOT NULL
					AND date_trunc('month', b.completed_at) = m.month
			),
			(
				SELECT COALESCE(SUM(te.hours), 0) FROM time_entries te
				LEFT JOIN briefs b ON b.id = te.brief_id
				WHERE ` + entryScope + ` AND date_trunc('month', te.entry_date) = m.month
			)
		FROM months m
		ORDER BY m.month ASC
	`
	rows, err := s.db.QueryContext(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.MonthlyRow, 0)
	for rows.Next() {
		var r store.MonthlyRow
		if err := rows.Scan(&r.Month, &r.Created, &r.Completed, &r.Hours); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *defaultStore) HoursByUser(ctx context.Context, f Filter, start, end time.Time) ([]store.UserHours, error) {
	args := &queryArgs{}
	query := `
		SELECT u.id, u.name, SUM(te.hours)
		FROM time_entries te
		JOIN users u ON u.id = te.user_id
		LEFT JOIN briefs b ON b.id = te.brief_id
		WHERE ` + f.entryScope(args) + `
			AND te.entry_date >= ` + args.add(start) + `
			AND te.entry_date <= ` + args.add(end) + `
		GROUP BY u.id, u.name
		HAVING SUM(te.hours) > 0
		ORDER BY SUM(te.hours) DESC, u.name ASC
	`
	rows, err := s.db.QueryContext(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("hours by user: %w", err)
	}
	defer closeRows(ctx, rows)
	return scanUserHours(rows)
}

func (s *defaultStore) CountBriefs(ctx context.Context, f Filter) (int64, error) {
	args := &queryArgs{}
	query := `SELECT COUNT(*) FROM briefs b WHERE ` + f.briefScope("b", args)

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args.values...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count briefs: %w", err)
	}
	return count, nil
}

func scanUserHours(rows *sql.Rows) ([]store.UserHours, error) {
	records := make([]store.UserHours, 0)
	for rows.Next() {
		var r store.UserHours
		if err := rows.Scan(&r.UserID, &r.Name, &r.Hours); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
