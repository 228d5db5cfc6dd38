// Package graphsync projects an organization's relational data into the graph
// store. Every run is recorded in the sync log; a failed run leaves the
// previous projection untouched and is never retried automatically.
package graphsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/agency-atlas/pkg/adapters"
	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/metrics"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/store/graphdb"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/synclog"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var errGraphNotConfigured = errors.New("graph store is not configured")

type Job interface {
	// Sync projects one organization. Sync failures are reported through the
	// returned log; the error is non-nil only when the log itself could not be
	// written.
	Sync(ctx context.Context, organizationID string) (domain.SyncLog, error)
	// Latest returns the most recent sync log of the organization.
	Latest(ctx context.Context, organizationID string) (domain.SyncLog, error)
}

type defaultJob struct {
	source aggregate.Store
	graph  graphdb.Store
	logs   synclog.Store
	clock  clock.Clock
}

// NewJob returns a sync job. graph may be nil, in which case every run is
// recorded as failed.
func NewJob(source aggregate.Store, graph graphdb.Store, logs synclog.Store, clk clock.Clock) Job {
	return &defaultJob{
		source: source,
		graph:  graph,
		logs:   logs,
		clock:  clk,
	}
}

func (j *defaultJob) Sync(ctx context.Context, organizationID string) (domain.SyncLog, error) {
	logger := zerolog.Ctx(ctx).With().Str("organization_id", organizationID).Logger()

	entry := domain.SyncLog{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		Status:         domain.SyncStatusRunning,
		StartedAt:      j.clock.Now(),
	}

	counts, err := j.project(ctx, organizationID)
	entry.FinishedAt = j.clock.Now()
	if err != nil {
		msg := err.Error()
		entry.Status = domain.SyncStatusFailed
		entry.Error = &msg
		logger.Error().Err(err).Str("sync_id", entry.ID).Msg("graph sync failed")
	} else {
		entry.Status = domain.SyncStatusCompleted
		entry.NodesSynced = counts.Nodes
		entry.EdgesSynced = counts.Edges
		logger.Info().
			Str("sync_id", entry.ID).
			Int("nodes", counts.Nodes).
			Int("edges", counts.Edges).
			Dur("took", entry.FinishedAt.Sub(entry.StartedAt)).
			Msg("graph sync completed")
	}
	metrics.GraphSyncs.WithLabelValues(string(entry.Status)).Inc()

	if err := j.logs.Add(ctx, adapters.MapDomainSyncLogToStore(entry)); err != nil {
		return entry, fmt.Errorf("record graph sync: %w", err)
	}
	return entry, nil
}

func (j *defaultJob) Latest(ctx context.Context, organizationID string) (domain.SyncLog, error) {
	record, err := j.logs.Latest(ctx, organizationID)
	if err != nil {
		return domain.SyncLog{}, err
	}
	return adapters.MapStoreSyncLogToDomain(*record), nil
}

func (j *defaultJob) project(ctx context.Context, organizationID string) (store.SyncCounts, error) {
	if j.graph == nil {
		return store.SyncCounts{}, fmt.Errorf("%w: %w", domain.ErrDependencyUnavailable, errGraphNotConfigured)
	}

	snapshot, err := j.snapshot(ctx, organizationID)
	if err != nil {
		return store.SyncCounts{}, fmt.Errorf("read organization snapshot: %w", err)
	}

	counts, err := j.graph.SyncOrganization(ctx, snapshot)
	if err != nil {
		return store.SyncCounts{}, fmt.Errorf("%w: %w", domain.ErrDependencyUnavailable, err)
	}
	return counts, nil
}

func (j *defaultJob) snapshot(ctx context.Context, organizationID string) (store.GraphSnapshot, error) {
	snapshot := store.GraphSnapshot{OrganizationID: organizationID}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot.People, err = j.source.ListPeople(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Clients, err = j.source.ListClients(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Briefs, err = j.source.ListBriefs(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Contributions, err = j.source.ListContributions(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Pairs, err = j.source.ListCoWorkPairs(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.UserSkills, err = j.source.ListUserSkills(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.BriefSkills, err = j.source.ListBriefSkills(gCtx, organizationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return store.GraphSnapshot{}, err
	}
	return snapshot, nil
}
