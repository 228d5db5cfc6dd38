package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/store"
)

func (s *defaultStore) ListOpenBriefs(ctx context.Context, f Filter) ([]store.OpenBriefRow, error) {
	args := &queryArgs{}
	query := `
		SELECT b.id, b.status, b.updated_at, c.name
		FROM briefs b
		JOIN clients c ON c.id = b.client_id
		WHERE ` + f.briefScope("b", args) + `
			AND b.status NOT IN ` + terminalStatuses + `
		ORDER BY b.updated_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("list open briefs: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.OpenBriefRow, 0)
	for rows.Next() {
		var r store.OpenBriefRow
		if err := rows.Scan(&r.BriefID, &r.Status, &r.UpdatedAt, &r.ClientName); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// WeeklyCreationCounts returns brief creation counts per ISO week. Weeks
// without briefs are omitted.
func (s *defaultStore) WeeklyCreationCounts(
	ctx context.Context,
	f Filter,
	start, end time.Time,
) ([]store.WeeklyCount, error) {
	args := &queryArgs{}
	query := `
		SELECT date_trunc('week', b.created_at) AS week, COUNT(*)
		FROM briefs b
		WHERE ` + f.briefScope("b", args) + `
			AND b.created_at >= ` + args.add(start) + `
			AND b.created_at <= ` + args.add(end) + `
		GROUP BY week
		ORDER BY week ASC
	`
	rows, err := s.db.QueryContext(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("weekly creation counts: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.WeeklyCount, 0)
	for rows.Next() {
		var r store.WeeklyCount
		if err := rows.Scan(&r.WeekStart, &r.Count); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
