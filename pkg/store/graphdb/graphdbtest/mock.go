// Package graphdbtest provides a testify mock of graphdb.Store.
package graphdbtest

import (
	"context"

	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/store/graphdb"
	"github.com/stretchr/testify/mock"
)

type Store struct {
	mock.Mock
}

var _ graphdb.Store = (*Store)(nil)

func (m *Store) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Store) SyncOrganization(ctx context.Context, snapshot store.GraphSnapshot) (store.SyncCounts, error) {
	args := m.Called(ctx, snapshot)
	return args.Get(0).(store.SyncCounts), args.Error(1)
}

func (m *Store) ListPeople(ctx context.Context, organizationID string) ([]store.PersonRow, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.PersonRow), args.Error(1)
}

func (m *Store) ListCollaborations(ctx context.Context, organizationID string) ([]store.CoWorkPair, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.CoWorkPair), args.Error(1)
}

func (m *Store) GetClient(ctx context.Context, organizationID, clientID string) (*store.ClientRow, error) {
	args := m.Called(ctx, organizationID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ClientRow), args.Error(1)
}

func (m *Store) ListClientContributors(ctx context.Context, organizationID, clientID string) ([]store.UserHours, error) {
	args := m.Called(ctx, organizationID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.UserHours), args.Error(1)
}

func (m *Store) ListClientAssignees(ctx context.Context, organizationID, clientID string) ([]store.AssigneeCount, error) {
	args := m.Called(ctx, organizationID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.AssigneeCount), args.Error(1)
}

func (m *Store) ListClients(ctx context.Context, organizationID string) ([]store.ClientRow, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ClientRow), args.Error(1)
}

func (m *Store) ListAssignmentCounts(ctx context.Context, organizationID string) ([]store.AssignmentCount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.AssignmentCount), args.Error(1)
}

func (m *Store) CountClientBriefs(ctx context.Context, organizationID, clientID string) (int64, error) {
	args := m.Called(ctx, organizationID, clientID)
	return args.Get(0).(int64), args.Error(1)
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
