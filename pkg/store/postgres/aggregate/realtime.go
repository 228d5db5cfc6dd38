package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/store"
)

func (s *defaultStore) CountBriefsByStatus(ctx context.Context, f Filter) (map[string]int64, error) {
	args := &queryArgs{}
	query := `
		SELECT b.status, COUNT(*)
		FROM briefs b
		WHERE ` + f.briefScope("b", args) + `
		GROUP BY b.status
	`
	rows, err := s.db.QueryContext(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("count briefs by status: %w", err)
	}
	defer closeRows(ctx, rows)

	counts := map[string]int64{}
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (s *defaultStore) SumHours(ctx context.Context, f Filter, start, end time.Time) (store.HoursTotals, error) {
	args := &queryArgs{}
	query := `
		SELECT
			COALESCE(SUM(te.hours), 0),
			COALESCE(SUM(CASE WHEN te.billable THEN te.hours ELSE 0 END), 0)
		FROM time_entries te
		LEFT JOIN briefs b ON b.id = te.brief_id
		WHERE ` + f.entryScope(args) + `
			AND te.entry_date >= ` + args.add(start) + `
			AND te.entry_date <= ` + args.add(end)

	var totals store.HoursTotals
	if err := s.db.QueryRowContext(ctx, query, args.values...).Scan(&totals.Total, &totals.Billable); err != nil {
		return store.HoursTotals{}, fmt.Errorf("sum hours: %w", err)
	}
	return totals, nil
}

func (s *defaultStore) CountActiveUsers(ctx context.Context, f Filter, since time.Time) (int64, error) {
	args := &queryArgs{}
	query := `
		SELECT COUNT(DISTINCT te.user_id)
		FROM time_entries te
		LEFT JOIN briefs b ON b.id = te.brief_id
		WHERE ` + f.entryScope(args) + `
			AND te.entry_date >= ` + args.add(since)

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args.values...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active users: %w", err)
	}
	return count, nil
}

func (s *defaultStore) CountOverdueBriefs(ctx context.Context, f Filter, now time.Time) (int64, error) {
	args := &queryArgs{}
	query := `
		SELECT COUNT(*)
		FROM briefs b
		WHERE ` + f.briefScope("b", args) + `
			AND b.deadline IS NOT NULL
			AND b.deadline < ` + args.add(now) + `
			AND b.status NOT IN ` + terminalStatuses

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args.values...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overdue briefs: %w", err)
	}
	return count, nil
}

// ListUpcomingDeadlines lists open briefs due in [from, until]. Briefs overdue
// since before from are left to CountOverdueBriefs so they never crowd out
// what is actually due.
func (s *defaultStore) ListUpcomingDeadlines(
	ctx context.Context,
	f Filter,
	from, until time.Time,
	limit int,
) ([]store.DeadlineRow, error) {
	args := &queryArgs{}
	query := `
		SELECT b.id, b.title, c.name, b.status, b.deadline
		FROM briefs b
		JOIN clients c ON c.id = b.client_id
		WHERE ` + f.briefScope("b", args) + `
			AND b.deadline >= ` + args.add(from) + `
			AND b.deadline <= ` + args.add(until) + `
			AND b.status NOT IN ` + terminalStatuses + `
		ORDER BY b.deadline ASC
		LIMIT ` + args.add(limit)

	rows, err := s.db.QueryContext(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("list upcoming deadlines: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.DeadlineRow, 0)
	for rows.Next() {
		var r store.DeadlineRow
		if err := rows.Scan(&r.BriefID, &r.Title, &r.ClientName, &r.Status, &r.Deadline); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *defaultStore) ListRecentActivity(
	ctx context.Context,
	f Filter,
	since time.Time,
	limit int,
) ([]store.ActivityRow, error) {
	args := &queryArgs{}
	query := `
		SELECT b.id, b.title, c.name, b.status, b.updated_at
		FROM briefs b
		JOIN clients c ON c.id = b.client_id
		WHERE ` + f.briefScope("b", args) + `
			AND b.updated_at >= ` + args.add(since) + `
		ORDER BY b.updated_at DESC
		LIMIT ` + args.add(limit)

	rows, err := s.db.QueryContext(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.ActivityRow, 0)
	for rows.Next() {
		var r store.ActivityRow
		if err := rows.Scan(&r.BriefID, &r.Title, &r.ClientName, &r.Status, &r.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
