// Package insights is the entry point for every report and graph operation.
//
// Each call runs under its own deadline and first resolves the organization
// it is scoped to; an unknown organization fails with domain.ErrNotFound. Reports fan out several read-only
// queries that run concurrently against the operational store without a
// shared snapshot, so a report is eventually consistent: a brief that
// changes state while a report is being built may be counted by one
// sub-query and not by another. Reports are either returned complete or fail;
// a timeout or any failed sub-query fails the whole report.
package insights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/agency-atlas/pkg/metrics"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/services/analysis"
	"github.com/de-tools/agency-atlas/pkg/services/clientanalytics"
	"github.com/de-tools/agency-atlas/pkg/services/graphsync"
	"github.com/de-tools/agency-atlas/pkg/services/network"
	"github.com/de-tools/agency-atlas/pkg/services/period"
	"github.com/de-tools/agency-atlas/pkg/services/realtime"
	"github.com/rs/zerolog"
)

const (
	ReportRealTime      = "realtime"
	ReportPeriod        = "period"
	ReportClient        = "client_analytics"
	ReportAnalysis      = "multi_factor_analysis"
	ReportCollaboration = "collaboration_network"
	ReportClientGraph   = "client_relationship_graph"
	ReportSkills        = "skill_network"
	ReportMultiParty    = "multi_party_graph"
	ReportGraphSync     = "graph_sync"
)

// Organizations resolves organization ids; aggregate.Store satisfies it.
type Organizations interface {
	GetOrganization(ctx context.Context, organizationID string) (*store.OrganizationRow, error)
}

type Dependencies struct {
	Organizations Organizations
	RealTime      realtime.Builder
	Period        period.Calculator
	Clients       clientanalytics.Composer
	Analysis      analysis.Engine
	Graphs        network.Builder
	Sync          graphsync.Job
}

type Service struct {
	deps    Dependencies
	timeout time.Duration
}

func NewService(deps Dependencies, timeout time.Duration) *Service {
	return &Service{deps: deps, timeout: timeout}
}

func (s *Service) GetRealTimeMetrics(ctx context.Context, scope domain.ReportScope) (domain.RealTimeMetrics, error) {
	if err := scope.Validate(); err != nil {
		return domain.RealTimeMetrics{}, err
	}
	return run(ctx, s, ReportRealTime, scope.OrganizationID, func(ctx context.Context) (domain.RealTimeMetrics, error) {
		return s.deps.RealTime.Build(ctx, scope.WithoutRange())
	})
}

func (s *Service) GetPeriodMetrics(ctx context.Context, scope domain.ReportScope) (domain.PeriodComparison, error) {
	if err := scope.RequireRange(); err != nil {
		return domain.PeriodComparison{}, err
	}
	return run(ctx, s, ReportPeriod, scope.OrganizationID, func(ctx context.Context) (domain.PeriodComparison, error) {
		return s.deps.Period.Compare(ctx, scope)
	})
}

func (s *Service) GetClientAnalytics(ctx context.Context, scope domain.ReportScope) (domain.ClientAnalytics, error) {
	if err := scope.RequireClient(); err != nil {
		return domain.ClientAnalytics{}, err
	}
	return run(ctx, s, ReportClient, scope.OrganizationID, func(ctx context.Context) (domain.ClientAnalytics, error) {
		return s.deps.Clients.Compose(ctx, scope)
	})
}

func (s *Service) GetMultiFactorAnalysis(ctx context.Context, scope domain.ReportScope) (domain.MultiFactorAnalysis, error) {
	if err := scope.RequireRange(); err != nil {
		return domain.MultiFactorAnalysis{}, err
	}
	return run(ctx, s, ReportAnalysis, scope.OrganizationID, func(ctx context.Context) (domain.MultiFactorAnalysis, error) {
		return s.deps.Analysis.Analyze(ctx, scope)
	})
}

func (s *Service) GetCollaborationNetwork(ctx context.Context, organizationID string) (domain.CollaborationNetwork, error) {
	if err := requireOrganization(organizationID); err != nil {
		return domain.CollaborationNetwork{}, err
	}
	return run(ctx, s, ReportCollaboration, organizationID, func(ctx context.Context) (domain.CollaborationNetwork, error) {
		return s.deps.Graphs.Collaboration(ctx, organizationID)
	})
}

// GetClientRelationshipGraph ignores any date range on the scope.
func (s *Service) GetClientRelationshipGraph(
	ctx context.Context,
	scope domain.ReportScope,
) (domain.ClientRelationshipGraph, error) {
	if err := scope.Validate(); err != nil {
		return domain.ClientRelationshipGraph{}, err
	}
	if !scope.HasClient() {
		return domain.ClientRelationshipGraph{}, fmt.Errorf("%w: client is required", domain.ErrInvalidScope)
	}
	return run(ctx, s, ReportClientGraph, scope.OrganizationID, func(ctx context.Context) (domain.ClientRelationshipGraph, error) {
		return s.deps.Graphs.ClientRelationships(ctx, scope.OrganizationID, scope.ClientID)
	})
}

func (s *Service) GetSkillNetwork(ctx context.Context, organizationID string) (domain.SkillNetwork, error) {
	if err := requireOrganization(organizationID); err != nil {
		return domain.SkillNetwork{}, err
	}
	return run(ctx, s, ReportSkills, organizationID, func(ctx context.Context) (domain.SkillNetwork, error) {
		return s.deps.Graphs.Skills(ctx, organizationID)
	})
}

func (s *Service) GetMultiPartyAnalysis(ctx context.Context, organizationID string) (domain.MultiPartyGraph, error) {
	if err := requireOrganization(organizationID); err != nil {
		return domain.MultiPartyGraph{}, err
	}
	return run(ctx, s, ReportMultiParty, organizationID, func(ctx context.Context) (domain.MultiPartyGraph, error) {
		return s.deps.Graphs.MultiParty(ctx, organizationID)
	})
}

// SyncOrganizationData projects the organization into the graph store. A
// failed sync is reported through the returned log's status, not the error.
func (s *Service) SyncOrganizationData(ctx context.Context, organizationID string) (domain.SyncLog, error) {
	if err := requireOrganization(organizationID); err != nil {
		return domain.SyncLog{}, err
	}
	return run(ctx, s, ReportGraphSync, organizationID, func(ctx context.Context) (domain.SyncLog, error) {
		return s.deps.Sync.Sync(ctx, organizationID)
	})
}

func (s *Service) LatestSync(ctx context.Context, organizationID string) (domain.SyncLog, error) {
	if err := requireOrganization(organizationID); err != nil {
		return domain.SyncLog{}, err
	}
	return run(ctx, s, ReportGraphSync, organizationID, func(ctx context.Context) (domain.SyncLog, error) {
		return s.deps.Sync.Latest(ctx, organizationID)
	})
}

func requireOrganization(organizationID string) error {
	return domain.ReportScope{OrganizationID: organizationID}.Validate()
}

// run resolves the organization and executes fn under the report deadline. A
// missed deadline becomes domain.ErrReportTimeout; other errors pass through
// unchanged.
func run[T any](
	ctx context.Context,
	s *Service,
	report, organizationID string,
	fn func(context.Context) (T, error),
) (T, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logger := zerolog.Ctx(ctx).With().
		Str("report", report).
		Str("organization_id", organizationID).
		Logger()
	ctx = logger.WithContext(ctx)

	var result T
	_, err := s.deps.Organizations.GetOrganization(ctx, organizationID)
	if err == nil {
		result, err = fn(ctx)
	}
	switch {
	case err == nil:
		metrics.ObserveReport(report, "ok", start)
		logger.Debug().Dur("took", time.Since(start)).Msg("report built")
		return result, nil

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		metrics.ObserveReport(report, "timeout", start)
		logger.Error().Err(err).Dur("timeout", s.timeout).Msg("report deadline exceeded")
		var zero T
		return zero, fmt.Errorf("%w: %s after %s: %w", domain.ErrReportTimeout, report, s.timeout, err)

	default:
		metrics.ObserveReport(report, "error", start)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn().Err(err).Msg("report scope not found")
		} else {
			logger.Error().Err(err).Msg("report failed")
		}
		var zero T
		return zero, err
	}
}
