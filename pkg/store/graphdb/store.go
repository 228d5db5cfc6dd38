package graphdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/saulfrancisco-ruizacevedo/gocypher"
)

// Node labels and relationship types of the projection.
const (
	LabelPerson = "Person"
	LabelClient = "Client"
	LabelBrief  = "Brief"
	LabelSkill  = "Skill"

	RelCollaboratedWith = "COLLABORATED_WITH"
	RelWorkedOn         = "WORKED_ON"
	RelAssignedTo       = "ASSIGNED_TO"
	RelForClient        = "FOR_CLIENT"
	RelHasSkill         = "HAS_SKILL"
	RelRequiresSkill    = "REQUIRES_SKILL"
)

// ErrNotSynced is returned by reads that find no projection for the requested entity.
var ErrNotSynced = errors.New("entity not present in graph projection")

type Store interface {
	Ping(ctx context.Context) error
	SyncOrganization(ctx context.Context, snapshot store.GraphSnapshot) (store.SyncCounts, error)

	ListPeople(ctx context.Context, organizationID string) ([]store.PersonRow, error)
	ListCollaborations(ctx context.Context, organizationID string) ([]store.CoWorkPair, error)
	GetClient(ctx context.Context, organizationID, clientID string) (*store.ClientRow, error)
	ListClientContributors(ctx context.Context, organizationID, clientID string) ([]store.UserHours, error)
	ListClientAssignees(ctx context.Context, organizationID, clientID string) ([]store.AssigneeCount, error)
	CountClientBriefs(ctx context.Context, organizationID, clientID string) (int64, error)
	ListClients(ctx context.Context, organizationID string) ([]store.ClientRow, error)
	ListAssignmentCounts(ctx context.Context, organizationID string) ([]store.AssignmentCount, error)
	ListUserSkills(ctx context.Context, organizationID string) ([]store.UserSkillRow, error)
	ListBriefSkills(ctx context.Context, organizationID string) ([]store.BriefSkillRow, error)
}

type defaultStore struct {
	runner Runner
}

func NewStore(runner Runner) (Store, error) {
	if runner == nil {
		return nil, fmt.Errorf("graph runner is nil")
	}
	return &defaultStore{runner: runner}, nil
}

func (s *defaultStore) Ping(ctx context.Context) error {
	return s.runner.Verify(ctx)
}

func (s *defaultStore) match(ctx context.Context, qb *gocypher.QueryBuilder) ([]*neo4j.Record, error) {
	query, params, err := qb.Build()
	if err != nil {
		return nil, fmt.Errorf("could not build query: %w", err)
	}
	result, err := s.runner.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

func orgProps(organizationID string) map[string]interface{} {
	return map[string]interface{}{"organizationId": organizationID}
}
