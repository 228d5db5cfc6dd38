package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
)

func (s *defaultStore) CountBriefsCreated(ctx context.Context, f Filter, start, end time.Time) (int64, error) {
	args := &queryArgs{}
	query := `
		SELECT COUNT(*)
		FROM briefs b
		WHERE ` + f.briefScope("b", args) + `
			AND b.created_at >= ` + args.add(start) + `
			AND b.created_at <= ` + args.add(end)

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args.values...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count briefs created: %w", err)
	}
	return count, nil
}

// ListCompletedBriefs returns briefs completed in [start, end] with the hours,
// distinct contributors and mean feedback score attached to each of them.
func (s *defaultStore) ListCompletedBriefs(
	ctx context.Context,
	f Filter,
	start, end time.Time,
) ([]store.CompletedBriefRow, error) {
	args := &queryArgs{}
	query := `
		SELECT
			b.id,
			b.created_at,
			b.completed_at,
			b.deadline,
			COALESCE(te.hours, 0),
			COALESCE(te.team_size, 0),
			fb.score
		FROM briefs b
		LEFT JOIN (
			SELECT brief_id, SUM(hours) AS hours, COUNT(DISTINCT user_id) AS team_size
			FROM time_entries
			WHERE brief_id IS NOT NULL
			GROUP BY brief_id
		) te ON te.brief_id = b.id
		LEFT JOIN (
			SELECT brief_id, AVG(score) AS score
			FROM client_feedback
			WHERE brief_id IS NOT NULL
			GROUP BY brief_id
		) fb ON fb.brief_id = b.id
		WHERE ` + f.briefScope("b", args) + `
			AND b.status = '` + string(domain.BriefStatusCompleted) + `'
			AND b.completed_at IS NOT NULL
			AND b.completed_at >= ` + args.add(start) + `
			AND b.completed_at <= ` + args.add(end) + `
		ORDER BY b.completed_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, args.values...)
	if err != nil {
		return nil, fmt.Errorf("list completed briefs: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.CompletedBriefRow, 0)
	for rows.Next() {
		var r store.CompletedBriefRow
		if err := rows.Scan(
			&r.BriefID,
			&r.CreatedAt,
			&r.CompletedAt,
			&r.Deadline,
			&r.HoursLogged,
			&r.TeamSize,
			&r.Feedback,
		); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *defaultStore) AverageSatisfaction(ctx context.Context, f Filter, start, end time.Time) (store.Average, error) {
	args := &queryArgs{}
	query := `
		SELECT COALESCE(AVG(cf.score), 0), COUNT(*)
		FROM client_feedback cf
		WHERE ` + f.briefScope("cf", args) + `
			AND cf.created_at >= ` + args.add(start) + `
			AND cf.created_at <= ` + args.add(end)

	var avg store.Average
	if err := s.db.QueryRowContext(ctx, query, args.values...).Scan(&avg.Value, &avg.Samples); err != nil {
		return store.Average{}, fmt.Errorf("average satisfaction: %w", err)
	}
	return avg, nil
}
