// Package aggregate is the read-only Aggregate Query Layer over the operational
// Postgres store. Every method is a single parameterised query; callers compose
// them concurrently, so no method relies on state shared with another call.
package aggregate

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// Filter scopes a query to an organization and, optionally, one client.
type Filter struct {
	OrganizationID string
	ClientID       string
}

func FilterFor(scope domain.ReportScope) Filter {
	return Filter{OrganizationID: scope.OrganizationID, ClientID: scope.ClientID}
}

type Store interface {
	GetOrganization(ctx context.Context, organizationID string) (*store.OrganizationRow, error)

	// real-time primitives
	CountBriefsByStatus(ctx context.Context, f Filter) (map[string]int64, error)
	SumHours(ctx context.Context, f Filter, start, end time.Time) (store.HoursTotals, error)
	CountActiveUsers(ctx context.Context, f Filter, since time.Time) (int64, error)
	CountOverdueBriefs(ctx context.Context, f Filter, now time.Time) (int64, error)
	ListUpcomingDeadlines(ctx context.Context, f Filter, from, until time.Time, limit int) ([]store.DeadlineRow, error)
	ListRecentActivity(ctx context.Context, f Filter, since time.Time, limit int) ([]store.ActivityRow, error)

	// period primitives
	CountBriefsCreated(ctx context.Context, f Filter, start, end time.Time) (int64, error)
	ListCompletedBriefs(ctx context.Context, f Filter, start, end time.Time) ([]store.CompletedBriefRow, error)
	AverageSatisfaction(ctx context.Context, f Filter, start, end time.Time) (store.Average, error)

	// client primitives
	GetClient(ctx context.Context, organizationID, clientID string) (*store.ClientRow, error)
	CountBriefsByType(ctx context.Context, f Filter, start, end time.Time) ([]store.TypeCount, error)
	MonthlyTrend(ctx context.Context, f Filter, start, end time.Time) ([]store.MonthlyRow, error)
	HoursByUser(ctx context.Context, f Filter, start, end time.Time) ([]store.UserHours, error)

	// analysis primitives
	ListOpenBriefs(ctx context.Context, f Filter) ([]store.OpenBriefRow, error)
	WeeklyCreationCounts(ctx context.Context, f Filter, start, end time.Time) ([]store.WeeklyCount, error)

	// graph sources
	ListPeople(ctx context.Context, organizationID string) ([]store.PersonRow, error)
	ListCoWorkPairs(ctx context.Context, organizationID string) ([]store.CoWorkPair, error)
	ListClients(ctx context.Context, organizationID string) ([]store.ClientRow, error)
	ListBriefs(ctx context.Context, organizationID string) ([]store.BriefRow, error)
	ListContributions(ctx context.Context, organizationID string) ([]store.Contribution, error)
	ListUserSkills(ctx context.Context, organizationID string) ([]store.UserSkillRow, error)
	ListBriefSkills(ctx context.Context, organizationID string) ([]store.BriefSkillRow, error)
	ListClientContributors(ctx context.Context, organizationID, clientID string) ([]store.UserHours, error)
	ListClientAssignees(ctx context.Context, organizationID, clientID string) ([]store.AssigneeCount, error)
	ListAssignmentCounts(ctx context.Context, organizationID string) ([]store.AssignmentCount, error)
	CountBriefs(ctx context.Context, f Filter) (int64, error)
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

// terminalStatuses is inlined into queries that select open briefs.
var terminalStatuses = fmt.Sprintf("('%s', '%s')", domain.BriefStatusCompleted, domain.BriefStatusCancelled)

// queryArgs collects positional arguments and hands out lib/pq placeholders.
type queryArgs struct {
	values []any
}

func (a *queryArgs) add(v any) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

// briefScope renders the organization/client condition for a briefs alias.
func (f Filter) briefScope(alias string, args *queryArgs) string {
	conds := []string{fmt.Sprintf("%s.organization_id = %s", alias, args.add(f.OrganizationID))}
	if f.ClientID != "" {
		conds = append(conds, fmt.Sprintf("%s.client_id = %s", alias, args.add(f.ClientID)))
	}
	return strings.Join(conds, " AND ")
}

// entryScope renders the condition for time_entries te joined to briefs b.
// Entries without a brief only count towards organization-wide figures.
func (f Filter) entryScope(args *queryArgs) string {
	conds := []string{fmt.Sprintf("te.organization_id = %s", args.add(f.OrganizationID))}
	if f.ClientID != "" {
		conds = append(conds, fmt.Sprintf("b.client_id = %s", args.add(f.ClientID)))
	}
	return strings.Join(conds, " AND ")
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close aggregate query rows")
	}
}
