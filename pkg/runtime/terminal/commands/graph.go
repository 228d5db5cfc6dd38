package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/agency-atlas/pkg/adapters"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewGraphCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Relationship graphs and graph store sync",
	}

	cmd.AddCommand(newCollaborationCmd(env))
	cmd.AddCommand(newClientGraphCmd(env))
	cmd.AddCommand(newSkillsCmd(env))
	cmd.AddCommand(newMultiPartyCmd(env))
	cmd.AddCommand(newSyncCmd(env))
	cmd.AddCommand(newLastSyncCmd(env))

	return cmd
}

func newCollaborationCmd(env *Env) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "collaboration",
		Short: "Who works with whom, key connectors and communities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, func(ctx context.Context, svc Service, reporter *export.Reporter) error {
				result, err := svc.GetCollaborationNetwork(ctx, flags.organization)
				if err != nil {
					return fmt.Errorf("failed to build collaboration network: %w", err)
				}
				out := adapters.MapCollaborationNetworkDomainToApi(result)
				return reporter.Handle(export.CollaborationView(out), out)
			})
		},
	}
	flags.bindOrganization(cmd)
	return cmd
}

func newClientGraphCmd(env *Env) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Team around a client and its concentration risks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, func(ctx context.Context, svc Service, reporter *export.Reporter) error {
				result, err := svc.GetClientRelationshipGraph(ctx, flags.scope())
				if err != nil {
					return fmt.Errorf("failed to build client relationship graph: %w", err)
				}
				out := adapters.MapClientRelationshipGraphDomainToApi(result)
				return reporter.Handle(export.ClientGraphView(out), out)
			})
		},
	}
	flags.bindOrganization(cmd)
	flags.bindClient(cmd, true)
	return cmd
}

func newSkillsCmd(env *Env) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Skill supply against open demand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, func(ctx context.Context, svc Service, reporter *export.Reporter) error {
				result, err := svc.GetSkillNetwork(ctx, flags.organization)
				if err != nil {
					return fmt.Errorf("failed to build skill network: %w", err)
				}
				out := adapters.MapSkillNetworkDomainToApi(result)
				return reporter.Handle(export.SkillsView(out), out)
			})
		},
	}
	flags.bindOrganization(cmd)
	return cmd
}

func newMultiPartyCmd(env *Env) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "multi-party",
		Short: "People to clients they work for, with graph density",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, func(ctx context.Context, svc Service, reporter *export.Reporter) error {
				result, err := svc.GetMultiPartyAnalysis(ctx, flags.organization)
				if err != nil {
					return fmt.Errorf("failed to build multi-party graph: %w", err)
				}
				out := adapters.MapMultiPartyGraphDomainToApi(result)
				return reporter.Handle(export.MultiPartyView(out), out)
			})
		},
	}
	flags.bindOrganization(cmd)
	return cmd
}

func newSyncCmd(env *Env) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Project the organization into the graph store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, func(ctx context.Context, svc Service, reporter *export.Reporter) error {
				result, err := svc.SyncOrganizationData(ctx, flags.organization)
				if err != nil {
					return fmt.Errorf("failed to sync graph: %w", err)
				}
				out := adapters.MapSyncLogDomainToApi(result)
				if err := reporter.Handle(export.SyncView(out), out); err != nil {
					return err
				}
				if result.Status == domain.SyncStatusFailed {
					return fmt.Errorf("graph sync %s failed", result.ID)
				}
				return nil
			})
		},
	}
	flags.bindOrganization(cmd)
	return cmd
}

func newLastSyncCmd(env *Env) *cobra.Command {
	var flags scopeFlags
	cmd := &cobra.Command{
		Use:   "last-sync",
		Short: "Show the most recent graph sync",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.run(cmd, func(ctx context.Context, svc Service, reporter *export.Reporter) error {
				result, err := svc.LatestSync(ctx, flags.organization)
				if err != nil {
					return fmt.Errorf("failed to read last graph sync: %w", err)
				}
				out := adapters.MapSyncLogDomainToApi(result)
				return reporter.Handle(export.SyncView(out), out)
			})
		},
	}
	flags.bindOrganization(cmd)
	return cmd
}
