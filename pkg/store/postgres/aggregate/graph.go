package aggregate

import (
	"context"
	"fmt"

	"github.com/de-tools/agency-atlas/pkg/models/store"
)

func (s *defaultStore) ListPeople(ctx context.Context, organizationID string) ([]store.PersonRow, error) {
	query := `
		SELECT id, name, email, department, weekly_capacity_hours, is_active
		FROM users
		WHERE organization_id = $1
		ORDER BY name ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.PersonRow, 0)
	for rows.Next() {
		var r store.PersonRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Department, &r.WeeklyCapacityHours, &r.Active); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListCoWorkPairs counts, for every pair of people, the distinct briefs both
// logged time on. Pairs are ordered so that UserA < UserB.
func (s *defaultStore) ListCoWorkPairs(ctx context.Context, organizationID string) ([]store.CoWorkPair, error) {
	query := `
		WITH contributors AS (
			SELECT DISTINCT brief_id, user_id
			FROM time_entries
			WHERE organization_id = $1 AND brief_id IS NOT NULL
		)
		SELECT a.user_id, b.user_id, COUNT(*)
		FROM contributors a
		JOIN contributors b ON a.brief_id = b.brief_id AND a.user_id < b.user_id
		GROUP BY a.user_id, b.user_id
		ORDER BY a.user_id ASC, b.user_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list co-work pairs: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.CoWorkPair, 0)
	for rows.Next() {
		var r store.CoWorkPair
		if err := rows.Scan(&r.UserA, &r.UserB, &r.SharedBriefs); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *defaultStore) ListClients(ctx context.Context, organizationID string) ([]store.ClientRow, error) {
	query := `
		SELECT id, name, industry
		FROM clients
		WHERE organization_id = $1
		ORDER BY name ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.ClientRow, 0)
	for rows.Next() {
		var r store.ClientRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Industry); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *defaultStore) ListBriefs(ctx context.Context, organizationID string) ([]store.BriefRow, error) {
	query := `
		SELECT id, client_id, title, brief_type, status, assignee_id, deadline, created_at
		FROM briefs
		WHERE organization_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list briefs: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.BriefRow, 0)
	for rows.Next() {
		var r store.BriefRow
		if err := rows.Scan(
			&r.ID,
			&r.ClientID,
			&r.Title,
			&r.BriefType,
			&r.Status,
			&r.AssigneeID,
			&r.Deadline,
			&r.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *defaultStore) ListContributions(ctx context.Context, organizationID string) ([]store.Contribution, error) {
	query := `
		SELECT user_id, brief_id, SUM(hours)
		FROM time_entries
		WHERE organization_id = $1 AND brief_id IS NOT NULL
		GROUP BY user_id, brief_id
		ORDER BY user_id ASC, brief_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.Contribution, 0)
	for rows.Next() {
		var r store.Contribution
		if err := rows.Scan(&r.UserID, &r.BriefID, &r.Hours); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListUserSkills covers active people only.
func (s *defaultStore) ListUserSkills(ctx context.Context, organizationID string) ([]store.UserSkillRow, error) {
	query := `
		SELECT us.user_id, us.skill, us.level
		FROM user_skills us
		JOIN users u ON u.id = us.user_id
		WHERE u.organization_id = $1 AND u.is_active
		ORDER BY us.skill ASC, us.user_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list user skills: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.UserSkillRow, 0)
	for rows.Next() {
		var r store.UserSkillRow
		if err := rows.Scan(&r.UserID, &r.Skill, &r.Level); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *defaultStore) ListBriefSkills(ctx context.Context, organizationID string) ([]store.BriefSkillRow, error) {
	query := `
		SELECT bs.brief_id, bs.skill, b.status NOT IN ` + terminalStatuses + `
		FROM brief_skills bs
		JOIN briefs b ON b.id = bs.brief_id
		WHERE b.organization_id = $1
		ORDER BY bs.skill ASC, bs.brief_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list brief skills: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.BriefSkillRow, 0)
	for rows.Next() {
		var r store.BriefSkillRow
		if err := rows.Scan(&r.BriefID, &r.Skill, &r.Open); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *defaultStore) ListClientContributors(
	ctx context.Context,
	organizationID, clientID string,
) ([]store.UserHours, error) {
	query := `
		SELECT u.id, u.name, SUM(te.hours)
		FROM time_entries te
		JOIN briefs b ON b.id = te.brief_id
		JOIN users u ON u.id = te.user_id
		WHERE b.organization_id = $1 AND b.client_id = $2
		GROUP BY u.id, u.name
		HAVING SUM(te.hours) > 0
		ORDER BY SUM(te.hours) DESC, u.name ASC
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID, clientID)
	if err != nil {
		return nil, fmt.Errorf("list client contributors: %w", err)
	}
	defer closeRows(ctx, rows)
	return scanUserHours(rows)
}

func (s *defaultStore) ListClientAssignees(
	ctx context.Context,
	organizationID, clientID string,
) ([]store.AssigneeCount, error) {
	query := `
		SELECT u.id, u.name, COUNT(*)
		FROM briefs b
		JOIN users u ON u.id = b.assignee_id
		WHERE b.organization_id = $1 AND b.client_id = $2
		GROUP BY u.id, u.name
		ORDER BY COUNT(*) DESC, u.name ASC
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID, clientID)
	if err != nil {
		return nil, fmt.Errorf("list client assignees: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.AssigneeCount, 0)
	for rows.Next() {
		var r store.AssigneeCount
		if err := rows.Scan(&r.UserID, &r.Name, &r.Briefs); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListAssignmentCounts counts assigned briefs per person and client.
func (s *defaultStore) ListAssignmentCounts(ctx context.Context, organizationID string) ([]store.AssignmentCount, error) {
	query := `
		SELECT b.assignee_id, b.client_id, COUNT(*)
		FROM briefs b
		WHERE b.organization_id = $1 AND b.assignee_id IS NOT NULL
		GROUP BY b.assignee_id, b.client_id
		ORDER BY b.assignee_id ASC, b.client_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list assignment counts: %w", err)
	}
	defer closeRows(ctx, rows)

	records := make([]store.AssignmentCount, 0)
	for rows.Next() {
		var r store.AssignmentCount
		if err := rows.Scan(&r.UserID, &r.ClientID, &r.Briefs); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
