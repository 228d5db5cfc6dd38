package network

import (
	"context"

	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate"
	"golang.org/x/sync/errgroup"
)

const BackendRelational = "relational"

// RelationalBackend computes graph sources from the operational store. It is
// always available and serves as the fallback for the graph backend.
type RelationalBackend struct {
	store aggregate.Store
}

func NewRelationalBackend(store aggregate.Store) *RelationalBackend {
	return &RelationalBackend{store: store}
}

func (b *RelationalBackend) Name() string { return BackendRelational }

func (b *RelationalBackend) Ping(context.Context) error { return nil }

func (b *RelationalBackend) Collaboration(ctx context.Context, organizationID string) (CollaborationSource, error) {
	var src CollaborationSource
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		src.People, err = b.store.ListPeople(gCtx, organizationID)
		return err
	})
	g.Go(func() error {
		var err error
		src.Pairs, err = b.store.ListCoWorkPairs(gCtx, organizationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return CollaborationSource{}, err
	}
	return src, nil
}

func (b *RelationalBackend) ClientRelationships(
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
		src.TotalBriefs, err = b.store.CountBriefs(gCtx, aggregate.Filter{OrganizationID: organizationID, ClientID: clientID})
		return err
	})
	if err := g.Wait(); err != nil {
		return ClientSource{}, err
	}
	return src, nil
}

func (b *RelationalBackend) Skills(ctx context.Context, organizationID string) (SkillSource, error) {
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
	src.People = activeOnly(people)
	return src, nil
}

func (b *RelationalBackend) MultiParty(ctx context.Context, organizationID string) (MultiPartySource, error) {
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
	src.People = activeOnly(people)
	return src, nil
}
