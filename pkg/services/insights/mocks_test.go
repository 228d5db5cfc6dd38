package insights

import (
	"context"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/stretchr/testify/mock"
)

type mockOrganizations struct{ mock.Mock }

func (m *mockOrganizations) GetOrganization(ctx context.Context, organizationID string) (*store.OrganizationRow, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.OrganizationRow), args.Error(1)
}

type mockRealTime struct{ mock.Mock }

func (m *mockRealTime) Build(ctx context.Context, scope domain.ReportScope) (domain.RealTimeMetrics, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.RealTimeMetrics), args.Error(1)
}

type mockPeriod struct{ mock.Mock }

func (m *mockPeriod) Compare(ctx context.Context, scope domain.ReportScope) (domain.PeriodComparison, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.PeriodComparison), args.Error(1)
}

func (m *mockPeriod) Metrics(ctx context.Context, scope domain.ReportScope) (domain.PeriodMetrics, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.PeriodMetrics), args.Error(1)
}

type mockComposer struct{ mock.Mock }

func (m *mockComposer) Compose(ctx context.Context, scope domain.ReportScope) (domain.ClientAnalytics, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.ClientAnalytics), args.Error(1)
}

type mockEngine struct{ mock.Mock }

func (m *mockEngine) Analyze(ctx context.Context, scope domain.ReportScope) (domain.MultiFactorAnalysis, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(domain.MultiFactorAnalysis), args.Error(1)
}

type mockGraphs struct{ mock.Mock }

func (m *mockGraphs) Collaboration(ctx context.Context, organizationID string) (domain.CollaborationNetwork, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.CollaborationNetwork), args.Error(1)
}

func (m *mockGraphs) ClientRelationships(
	ctx context.Context,
	organizationID, clientID string,
) (domain.ClientRelationshipGraph, error) {
	args := m.Called(ctx, organizationID, clientID)
	return args.Get(0).(domain.ClientRelationshipGraph), args.Error(1)
}

func (m *mockGraphs) Skills(ctx context.Context, organizationID string) (domain.SkillNetwork, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.SkillNetwork), args.Error(1)
}

func (m *mockGraphs) MultiParty(ctx context.Context, organizationID string) (domain.MultiPartyGraph, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.MultiPartyGraph), args.Error(1)
}

type mockSync struct{ mock.Mock }

func (m *mockSync) Sync(ctx context.Context, organizationID string) (domain.SyncLog, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.SyncLog), args.Error(1)
}

func (m *mockSync) Latest(ctx context.Context, organizationID string) (domain.SyncLog, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.SyncLog), args.Error(1)
}
