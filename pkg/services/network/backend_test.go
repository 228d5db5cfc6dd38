package network

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/store/graphdb"
	"github.com/de-tools/agency-atlas/pkg/store/graphdb/graphdbtest"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate/aggregatetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRelationalBackend_Collaboration(t *testing.T) {
	ctx := context.Background()
	s := &aggregatetest.Store{}
	s.On("ListPeople", mock.Anything, "org-1").Return(people("Ana", "Ben"), nil)
	s.On("ListCoWorkPairs", mock.Anything, "org-1").Return([]store.CoWorkPair{pair("Ana", "Ben", 2)}, nil)

	backend := NewRelationalBackend(s)
	src, err := backend.Collaboration(ctx, "org-1")

	require.NoError(t, err)
	assert.Equal(t, BackendRelational, backend.Name())
	assert.NoError(t, backend.Ping(ctx))
	assert.Len(t, src.People, 2)
	assert.Len(t, src.Pairs, 1)
	s.AssertExpectations(t)
}

func TestRelationalBackend_ClientRelationships(t *testing.T) {
	ctx := context.Background()
	s := &aggregatetest.Store{}
	s.On("GetClient", ctx, "org-1", "c-1").Return(&store.ClientRow{ID: "c-1", Name: "Acme"}, nil)
	s.On("ListClientContributors", mock.Anything, "org-1", "c-1").
		Return([]store.UserHours{{UserID: "u-Ana", Name: "Ana", Hours: 8}}, nil)
	s.On("ListClientAssignees", mock.Anything, "org-1", "c-1").
		Return([]store.AssigneeCount{{UserID: "u-Ana", Name: "Ana", Briefs: 2}}, nil)
	s.On("CountBriefs", mock.Anything, aggregate.Filter{OrganizationID: "org-1", ClientID: "c-1"}).
		Return(int64(4), nil)

	src, err := NewRelationalBackend(s).ClientRelationships(ctx, "org-1", "c-1")

	require.NoError(t, err)
	assert.Equal(t, "Acme", src.Client.Name)
	assert.Equal(t, int64(4), src.TotalBriefs)
	assert.Len(t, src.Contributors, 1)
	assert.Len(t, src.Assignees, 1)
}

func TestRelationalBackend_ClientNotFound(t *testing.T) {
	ctx := context.Background()
	s := &aggregatetest.Store{}
	s.On("GetClient", ctx, "org-1", "c-9").Return(nil, domain.ErrNotFound)

	_, err := NewRelationalBackend(s).ClientRelationships(ctx, "org-1", "c-9")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	s.AssertNotCalled(t, "CountBriefs", mock.Anything, mock.Anything)
}

func TestRelationalBackend_Skills(t *testing.T) {
	ctx := context.Background()
	rows := people("Ana", "Ben")
	rows[1].Active = false
	s := &aggregatetest.Store{}
	s.On("ListPeople", mock.Anything, "org-1").Return(rows, nil)
	s.On("ListUserSkills", mock.Anything, "org-1").Return([]store.UserSkillRow{{UserID: "u-Ana", Skill: "design", Level: 2}}, nil)
	s.On("ListBriefSkills", mock.Anything, "org-1").Return(openBriefs("design", true, "b1"), nil)

	src, err := NewRelationalBackend(s).Skills(ctx, "org-1")

	require.NoError(t, err)
	require.Len(t, src.People, 1)
	assert.Equal(t, "Ana", src.People[0].Name)
	assert.Len(t, src.UserSkills, 1)
	assert.Len(t, src.BriefSkills, 1)
}

func TestRelationalBackend_Skills_Error(t *testing.T) {
	s := &aggregatetest.Store{}
	s.On("ListPeople", mock.Anything, "org-1").Return(nil, errors.New("timeout")).Maybe()
	s.On("ListUserSkills", mock.Anything, "org-1").Return(nil, errors.New("timeout")).Maybe()
	s.On("ListBriefSkills", mock.Anything, "org-1").Return(nil, errors.New("timeout")).Maybe()

	_, err := NewRelationalBackend(s).Skills(context.Background(), "org-1")

	assert.EqualError(t, err, "timeout")
}

func TestGraphBackend_Collaboration(t *testing.T) {
	ctx := context.Background()

	t.Run("projection present", func(t *testing.T) {
		s := &graphdbtest.Store{}
		s.On("ListPeople", mock.Anything, "org-1").Return(people("Ana", "Ben"), nil)
		s.On("ListCollaborations", mock.Anything, "org-1").Return([]store.CoWorkPair{pair("Ana", "Ben", 1)}, nil)

		src, err := NewGraphBackend(s).Collaboration(ctx, "org-1")

		require.NoError(t, err)
		assert.Len(t, src.Pairs, 1)
	})

	t.Run("organization never synced", func(t *testing.T) {
		s := &graphdbtest.Store{}
		s.On("ListPeople", mock.Anything, "org-1").Return([]store.PersonRow{}, nil)
		s.On("ListCollaborations", mock.Anything, "org-1").Return([]store.CoWorkPair{}, nil)

		_, err := NewGraphBackend(s).Collaboration(ctx, "org-1")

		assert.ErrorIs(t, err, errEmptyProjection)
	})
}

func TestGraphBackend_Ping(t *testing.T) {
	ctx := context.Background()
	s := &graphdbtest.Store{}
	s.On("Ping", ctx).Return(errors.New("dial tcp: connection refused"))

	backend := NewGraphBackend(s)

	assert.Equal(t, BackendGraph, backend.Name())
	assert.EqualError(t, backend.Ping(ctx), "dial tcp: connection refused")
}

func TestGraphBackend_ClientRelationships(t *testing.T) {
	ctx := context.Background()

	t.Run("client synced", func(t *testing.T) {
		s := &graphdbtest.Store{}
		s.On("GetClient", ctx, "org-1", "c-1").Return(&store.ClientRow{ID: "c-1", Name: "Acme"}, nil)
		s.On("ListClientContributors", mock.Anything, "org-1", "c-1").Return([]store.UserHours{}, nil)
		s.On("ListClientAssignees", mock.Anything, "org-1", "c-1").Return([]store.AssigneeCount{}, nil)
		s.On("CountClientBriefs", mock.Anything, "org-1", "c-1").Return(int64(6), nil)

		src, err := NewGraphBackend(s).ClientRelationships(ctx, "org-1", "c-1")

		require.NoError(t, err)
		assert.Equal(t, int64(6), src.TotalBriefs)
	})

	t.Run("client missing from projection", func(t *testing.T) {
		s := &graphdbtest.Store{}
		s.On("GetClient", ctx, "org-1", "c-1").Return(nil, graphdb.ErrNotSynced)

		_, err := NewGraphBackend(s).ClientRelationships(ctx, "org-1", "c-1")

		assert.ErrorIs(t, err, graphdb.ErrNotSynced)
	})
}

func TestGraphBackend_Skills(t *testing.T) {
	ctx := context.Background()
	s := &graphdbtest.Store{}
	s.On("ListPeople", mock.Anything, "org-1").Return(people("Ana"), nil)
	s.On("ListUserSkills", mock.Anything, "org-1").Return([]store.UserSkillRow{}, nil)
	s.On("ListBriefSkills", mock.Anything, "org-1").Return([]store.BriefSkillRow{}, nil)

	src, err := NewGraphBackend(s).Skills(ctx, "org-1")

	require.NoError(t, err)
	assert.Len(t, src.People, 1)
}

func TestRelationalBackend_MultiParty(t *testing.T) {
	ctx := context.Background()
	rows := people("Ana", "Ben")
	rows[1].Active = false
	s := &aggregatetest.Store{}
	s.On("ListPeople", mock.Anything, "org-1").Return(rows, nil)
	s.On("ListClients", mock.Anything, "org-1").Return([]store.ClientRow{{ID: "c-1", Name: "Acme"}}, nil)
	s.On("ListAssignmentCounts", mock.Anything, "org-1").
		Return([]store.AssignmentCount{{UserID: "u-Ana", ClientID: "c-1", Briefs: 2}}, nil)

	src, err := NewRelationalBackend(s).MultiParty(ctx, "org-1")

	require.NoError(t, err)
	require.Len(t, src.People, 1)
	assert.Equal(t, "Ana", src.People[0].Name)
	assert.Len(t, src.Clients, 1)
	assert.Len(t, src.Assignments, 1)
}

func TestGraphBackend_MultiParty(t *testing.T) {
	ctx := context.Background()

	t.Run("projection present", func(t *testing.T) {
		s := &graphdbtest.Store{}
		s.On("ListPeople", mock.Anything, "org-1").Return(people("Ana"), nil)
		s.On("ListClients", mock.Anything, "org-1").Return([]store.ClientRow{{ID: "c-1", Name: "Acme"}}, nil)
		s.On("ListAssignmentCounts", mock.Anything, "org-1").Return([]store.AssignmentCount{}, nil)

		src, err := NewGraphBackend(s).MultiParty(ctx, "org-1")

		require.NoError(t, err)
		assert.Len(t, src.People, 1)
		assert.Len(t, src.Clients, 1)
	})

	t.Run("organization never synced", func(t *testing.T) {
		s := &graphdbtest.Store{}
		s.On("ListPeople", mock.Anything, "org-1").Return([]store.PersonRow{}, nil)
		s.On("ListClients", mock.Anything, "org-1").Return([]store.ClientRow{}, nil)
		s.On("ListAssignmentCounts", mock.Anything, "org-1").Return([]store.AssignmentCount{}, nil)

		_, err := NewGraphBackend(s).MultiParty(ctx, "org-1")

		assert.ErrorIs(t, err, errEmptyProjection)
	})
}
