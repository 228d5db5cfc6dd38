package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/store/graphdb"
	"golang.org/x/sync/errgroup"
)

const BackendGraph = "graph"

// errEmptyProjection marks an organization that has not been synced yet.
var errEmptyProjection = errors.New("organization has no graph projection")

// GraphBackend reads graph sources from the graph-native projection.
type GraphBackend struct {
	store graphdb.Store
}

func NewGraphBackend(store graphdb.Store) *GraphBackend {
	return &GraphBackend{store: store}
}

func (b *GraphBackend) Name() string { return BackendGraph }

func (b *GraphBackend) Ping(ctx context.Context) error {
	return b.store.Ping(ctx)
}

func (b *GraphBackend) Collaboration(ctx context.Context, organizationID string) (CollaborationSource, error) {
	var src CollaborationSource
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		src.People, err = b.store.ListPeople(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		src.Pairs, err = b.store.ListCollaborations(gCtx, organizationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return CollaborationSource{}, err
	}
	if len(src.People) == 0 {
		return CollaborationSource{}, fmt.Errorf("%s: %w", organizationID, errEmptyProjection)
	}
	return src, nil
}

func (b *GraphBackend) ClientRelationships(
	ctx context.Context,
	organizationID, clientID string,
) (ClientSource, error) {
	client, err := b.store.GetClient(ctx, organizationID, clientID)
	if err != nil {
		return ClientSource{}, err
	}

	src := ClientSource{Client: *client}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		src.Contributors, err = b.store.ListClientContributors(gCtx, organizationID, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		src.Assignees, err = b.store.ListClientAssignees(gCtx, organizationID, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		src.TotalBriefs, err = b.store.CountClientBriefs(gCtx, organizationID, clientID)
		return err
	})
	if err := g.Wait(); err != nil {
		return ClientSource{}, err
	}
	return src, nil
}

func (b *GraphBackend) Skills(ctx context.Context, organizationID string) (SkillSource, error) {
	var (
		people []store.PersonRow
		src    SkillSource
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		people, err = b.store.ListPeople(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		src.UserSkills, err = b.store.ListUserSkills(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		src.BriefSkills, err = b.store.ListBriefSkills(gCtx, organizationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return SkillSource{}, err
	}
	if len(people) == 0 {
		return SkillSource{}, fmt.Errorf("%s: %w", organizationID, errEmptyProjection)
	}
	src.People = activeOnly(people)
	return src, nil
}

func (b *GraphBackend) MultiParty(ctx context.Context, organizationID string) (MultiPartySource, error) {
	var (
		people []store.PersonRow
		src    MultiPartySource
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		people, err = b.store.ListPeople(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		src.Clients, err = b.store.ListClients(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		src.Assignments, err = b.store.ListAssignmentCounts(gCtx, organizationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return MultiPartySource{}, err
	}
	if len(people) == 0 {
		return MultiPartySource{}, fmt.Errorf("%s: %w", organizationID, errEmptyProjection)
	}
	src.People = activeOnly(people)
	return src, nil
}
