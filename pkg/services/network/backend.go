package network

import (
	"context"

	"github.com/de-tools/agency-atlas/pkg/models/store"
)

// CollaborationSource is the raw input to a collaboration network.
type CollaborationSource struct {
	People []store.PersonRow
	Pairs  []store.CoWorkPair
}

// ClientSource is the raw input to a client relationship graph.
type ClientSource struct {
	Client       store.ClientRow
	Contributors []store.UserHours
	Assignees    []store.AssigneeCount
	TotalBriefs  int64
}

// SkillSource is the raw input to a skill network. People and user skills
// cover active people only.
type SkillSource struct {
	People      []store.PersonRow
	UserSkills  []store.UserSkillRow
	BriefSkills []store.BriefSkillRow
}

// MultiPartySource is the raw input to a multi-party graph. People cover
// active people only.
type MultiPartySource struct {
	People      []store.PersonRow
	Clients     []store.ClientRow
	Assignments []store.AssignmentCount
}

// Backend reads graph source data from one store. Every backend returns the
// same shapes so the assembled graphs are identical whichever one served.
type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Collaboration(ctx context.Context, organizationID string) (CollaborationSource, error)
	ClientRelationships(ctx context.Context, organizationID, clientID string) (ClientSource, error)
	Skills(ctx context.Context, organizationID string) (SkillSource, error)
	MultiParty(ctx context.Context, organizationID string) (MultiPartySource, error)
}

func activeOnly(people []store.PersonRow) []store.PersonRow {
	active := make([]store.PersonRow, 0, len(people))
	for _, p := range people {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}
