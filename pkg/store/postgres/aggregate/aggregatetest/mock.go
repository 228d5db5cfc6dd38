// Package aggregatetest provides a testify mock of aggregate.Store.
package aggregatetest

import (
	"context"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate"
	"github.com/stretchr/testify/mock"
)

type Store struct {
	mock.Mock
}

var _ aggregate.Store = (*Store)(nil)

func (m *Store) GetOrganization(ctx context.Context, organizationID string) (*store.OrganizationRow, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.OrganizationRow), args.Error(1)
}

func (m *Store) CountBriefsByStatus(ctx context.Context, f aggregate.Filter) (map[string]int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *Store) SumHours(ctx context.Context, f aggregate.Filter, start, end time.Time) (store.HoursTotals, error) {
	args := m.Called(ctx, f, start, end)
	return args.Get(0).(store.HoursTotals), args.Error(1)
}

func (m *Store) CountActiveUsers(ctx context.Context, f aggregate.Filter, since time.Time) (int64, error) {
	args := m.Called(ctx, f, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) CountOverdueBriefs(ctx context.Context, f aggregate.Filter, now time.Time) (int64, error) {
	args := m.Called(ctx, f, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) ListUpcomingDeadlines(
	ctx context.Context,
	f aggregate.Filter,
	from, until time.Time,
	limit int,
) ([]store.DeadlineRow, error) {
	args := m.Called(ctx, f, from, until, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.DeadlineRow), args.Error(1)
}

func (m *Store) ListRecentActivity(
	ctx context.Context,
	f aggregate.Filter,
	since time.Time,
	limit int,
) ([]store.ActivityRow, error) {
	args := m.Called(ctx, f, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ActivityRow), args.Error(1)
}

func (m *Store) CountBriefsCreated(ctx context.Context, f aggregate.Filter, start, end time.Time) (int64, error) {
	args := m.Called(ctx, f, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) ListCompletedBriefs(
	ctx context.Context,
	f aggregate.Filter,
	start, end time.Time,
) ([]store.CompletedBriefRow, error) {
	args := m.Called(ctx, f, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.CompletedBriefRow), args.Error(1)
}

func (m *Store) AverageSatisfaction(ctx context.Context, f aggregate.Filter, start, end time.Time) (store.Average, error) {
	args := m.Called(ctx, f, start, end)
	return args.Get(0).(store.Average), args.Error(1)
}

func (m *Store) GetClient(ctx context.Context, organizationID, clientID string) (*store.ClientRow, error) {
	args := m.Called(ctx, organizationID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ClientRow), args.Error(1)
}

func (m *Store) CountBriefsByType(
	ctx context.Context,
	f aggregate.Filter,
	start, end time.Time,
) ([]store.TypeCount, error) {
	args := m.Called(ctx, f, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.TypeCount), args.Error(1)
}

func (m *Store) MonthlyTrend(ctx context.Context, f aggregate.Filter, start, end time.Time) ([]store.MonthlyRow, error) {
	args := m.Called(ctx, f, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.MonthlyRow), args.Error(1)
}

func (m *Store) HoursByUser(ctx context.Context, f aggregate.Filter, start, end time.Time) ([]store.UserHours, error) {
	args := m.Called(ctx, f, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.UserHours), args.Error(1)
}

func (m *Store) ListOpenBriefs(ctx context.Context, f aggregate.Filter) ([]store.OpenBriefRow, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.OpenBriefRow), args.Error(1)
}

func (m *Store) WeeklyCreationCounts(
	ctx context.Context,
	f aggregate.Filter,
	start, end time.Time,
) ([]store.WeeklyCount, error) {
	args := m.Called(ctx, f, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.WeeklyCount), args.Error(1)
}

func (m *Store) ListPeople(ctx context.Context, organizationID string) ([]store.PersonRow, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.PersonRow), args.Error(1)
}

func (m *Store) ListCoWorkPairs(ctx context.Context, organizationID string) ([]store.CoWorkPair, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.CoWorkPair), args.Error(1)
}

func (m *Store) ListClients(ctx context.Context, organizationID string) ([]store.ClientRow, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ClientRow), args.Error(1)
}

func (m *Store) ListBriefs(ctx context.Context, organizationID string) ([]store.BriefRow, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.BriefRow), args.Error(1)
}

func (m *Store) ListContributions(ctx context.Context, organizationID string) ([]store.Contribution, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Contribution), args.Error(1)
}

func (m *Store) ListUserSkills(ctx context.Context, organizationID string) ([]store.UserSkillRow, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.UserSkillRow), args.Error(1)
}

func (m *Store) ListBriefSkills(ctx context.Context, organizationID string) ([]store.BriefSkillRow, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.BriefSkillRow), args.Error(1)
}

func (m *Store) ListClientContributors(ctx context.Context, organizationID, clientID string) ([]store.UserHours, error) {
	args := m.Called(ctx, organizationID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.UserHours), args.Error(1)
}

func (m *Store) ListClientAssignees(
	ctx context.Context,
	organizationID, clientID string,
) ([]store.AssigneeCount, error) {
	args := m.Called(ctx, organizationID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.AssigneeCount), args.Error(1)
}

func (m *Store) CountBriefs(ctx context.Context, f aggregate.Filter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) ListAssignmentCounts(ctx context.Context, organizationID string) ([]store.AssignmentCount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.AssignmentCount), args.Error(1)
}
