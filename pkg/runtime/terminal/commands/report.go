package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/agency-atlas/pkg/adapters"
	"github.com/de-tools/agency-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewReportCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Operational reports",
	}

	cmd.AddCommand(newRealTimeCmd(env))
	cmd.AddCommand(newPeriodCmd(env))
	cmd.AddCommand(newClientCmd(env))
	cmd.AddCommand(newAnalysisCmd(env))

	return cmd
}

func newRealTimeCmd(env *Env) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "realtime",
		Short: "Current workload, deadlines and recent activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, func(ctx context.Context, svc Service, reporter *export.Reporter) error {
				result, err := svc.GetRealTimeMetrics(ctx, flags.scope())
				if err != nil {
					return fmt.Errorf("failed to build real-time metrics: %w", err)
				}
				out := adapters.MapRealTimeMetricsDomainToApi(result)
				return reporter.Handle(export.RealTimeView(out), out)
			})
		},
	}
	flags.bindOrganization(cmd)
	flags.bindClient(cmd, false)
	return cmd
}

func newPeriodCmd(env *Env) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Compare a period with the one immediately before it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := flags.rangedScope(env.Clock)
			if err != nil {
				return err
			}
			return env.run(cmd, func(ctx context.Context, svc Service, reporter *export.Reporter) error {
				result, err := svc.GetPeriodMetrics(ctx, scope)
				if err != nil {
					return fmt.Errorf("failed to build period metrics: %w", err)
				}
				out := adapters.MapPeriodComparisonDomainToApi(result)
				return reporter.Handle(export.PeriodView(out), out)
			})
		},
	}
	flags.bindOrganization(cmd)
	flags.bindClient(cmd, false)
	flags.bindRange(cmd)
	return cmd
}

func newClientCmd(env *Env) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Analytics for a single client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := flags.rangedScope(env.Clock)
			if err != nil {
				return err
			}
			return env.run(cmd, func(ctx context.Context, svc Service, reporter *export.Reporter) error {
				result, err := svc.GetClientAnalytics(ctx, scope)
				if err != nil {
					return fmt.Errorf("failed to build client analytics: %w", err)
				}
				out := adapters.MapClientAnalyticsDomainToApi(result)
				return reporter.Handle(export.ClientView(out), out)
			})
		},
	}
	flags.bindOrganization(cmd)
	flags.bindClient(cmd, true)
	flags.bindRange(cmd)
	return cmd
}

func newAnalysisCmd(env *Env) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "analysis",
		Short: "Correlations, performance drivers, bottlenecks and capacity forecast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := flags.rangedScope(env.Clock)
			if err != nil {
				return err
			}
			return env.run(cmd, func(ctx context.Context, svc Service, reporter *export.Reporter) error {
				result, err := svc.GetMultiFactorAnalysis(ctx, scope)
				if err != nil {
					return fmt.Errorf("failed to build multi-factor analysis: %w", err)
				}
				out := adapters.MapMultiFactorAnalysisDomainToApi(result)
				return reporter.Handle(export.AnalysisView(out), out)
			})
		},
	}
	flags.bindOrganization(cmd)
	flags.bindClient(cmd, false)
	flags.bindRange(cmd)
	return cmd
}
