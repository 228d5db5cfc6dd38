package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// Service is implemented by insights.Service.
type Service interface {
	GetRealTimeMetrics(ctx context.Context, scope domain.ReportScope) (domain.RealTimeMetrics, error)
	GetPeriodMetrics(ctx context.Context, scope domain.ReportScope) (domain.PeriodComparison, error)
	GetClientAnalytics(ctx context.Context, scope domain.ReportScope) (domain.ClientAnalytics, error)
	GetMultiFactorAnalysis(ctx context.Context, scope domain.ReportScope) (domain.MultiFactorAnalysis, error)
	GetCollaborationNetwork(ctx context.Context, organizationID string) (domain.CollaborationNetwork, error)
	GetClientRelationshipGraph(ctx context.Context, scope domain.ReportScope) (domain.ClientRelationshipGraph, error)
	GetSkillNetwork(ctx context.Context, organizationID string) (domain.SkillNetwork, error)
	GetMultiPartyAnalysis(ctx context.Context, organizationID string) (domain.MultiPartyGraph, error)
	SyncOrganizationData(ctx context.Context, organizationID string) (domain.SyncLog, error)
	LatestSync(ctx context.Context, organizationID string) (domain.SyncLog, error)
}

// Connector opens a Service and returns the function releasing it.
type Connector func(ctx context.Context) (Service, func(context.Context) error, error)

// Env is shared by all commands. Format is read when a command runs so it
// reflects the parsed --output flag.
type Env struct {
	Connect Connector
	Clock   clock.Clock
	Output  io.Writer
	Format  *string
}

func (e *Env) run(cmd *cobra.Command, fn func(ctx context.Context, svc Service, reporter *export.Reporter) error) error {
	format := export.FormatTable
	if e.Format != nil {
		f, err := export.ParseFormat(*e.Format)
		if err != nil {
			return err
		}
		format = f
	}
	reporter := export.NewReporter(e.Output, format)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, release, err := e.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		_ = release(ctx)
	}()

	return fn(ctx, svc, reporter)
}

type scopeFlags struct {
	organization string
	client       string
	from         string
	to           string
}

func (f *scopeFlags) bindOrganization(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.organization, "org", "", "Organization ID")
	_ = cmd.MarkFlagRequired("org")
}

func (f *scopeFlags) bindClient(cmd *cobra.Command, required bool) {
	cmd.Flags().StringVar(&f.client, "client", "", "Client ID")
	if required {
		_ = cmd.MarkFlagRequired("client")
	}
}

func (f *scopeFlags) bindRange(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Start date (YYYY-MM-DD), defaults to 30 days before --to")
	cmd.Flags().StringVar(&f.to, "to", "", "End date inclusive (YYYY-MM-DD), defaults to today")
}

func (f *scopeFlags) scope() domain.ReportScope {
	return domain.ReportScope{OrganizationID: f.organization, ClientID: f.client}
}

func (f *scopeFlags) rangedScope(now clock.Clock) (domain.ReportScope, error) {
	dr, err := domain.ParseDayRange(f.from, f.to, now.Now())
	if err != nil {
		return domain.ReportScope{}, err
	}
	return f.scope().WithRange(dr), nil
}
