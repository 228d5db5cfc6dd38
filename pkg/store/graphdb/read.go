package graphdb

import (
	"context"
	"fmt"
	"sort"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/saulfrancisco-ruizacevedo/gocypher"
)

func (s *defaultStore) ListPeople(ctx context.Context, organizationID string) ([]store.PersonRow, error) {
	records, err := s.match(ctx, gocypher.NewQueryBuilder().
		Match(gocypher.N("p", LabelPerson).WithProperties(orgProps(organizationID))).
		Return("p"))
	if err != nil {
		return nil, fmt.Errorf("list graph people: %w", err)
	}

	people := make([]store.PersonRow, 0, len(records))
	for _, record := range records {
		node, err := nodeAt(record, "p")
		if err != nil {
			return nil, err
		}
		people = append(people, personFromProps(node.Props))
	}
	sort.Slice(people, func(i, j int) bool {
		if people[i].Name != people[j].Name {
			return people[i].Name < people[j].Name
		}
		return people[i].ID < people[j].ID
	})
	return people, nil
}

func (s *defaultStore) ListCollaborations(ctx context.Context, organizationID string) ([]store.CoWorkPair, error) {
	records, err := s.match(ctx, gocypher.NewQueryBuilder().
		Match(
			gocypher.N("a", LabelPerson).WithProperties(orgProps(organizationID)),
			gocypher.R("r", RelCollaboratedWith).To(),
			gocypher.N("b", LabelPerson),
		).
		Return("a", "r", "b"))
	if err != nil {
		return nil, fmt.Errorf("list graph collaborations: %w", err)
	}

	pairs := make([]store.CoWorkPair, 0, len(records))
	for _, record := range records {
		a, err := nodeAt(record, "a")
		if err != nil {
			return nil, err
		}
		b, err := nodeAt(record, "b")
		if err != nil {
			return nil, err
		}
		rel, err := relationshipAt(record, "r")
		if err != nil {
			return nil, err
		}
		userA, userB := stringProp(a.Props, "id"), stringProp(b.Props, "id")
		if userB < userA {
			userA, userB = userB, userA
		}
		pairs = append(pairs, store.CoWorkPair{
			UserA:        userA,
			UserB:        userB,
			SharedBriefs: intProp(rel.Props, "sharedBriefs"),
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].UserA != pairs[j].UserA {
			return pairs[i].UserA < pairs[j].UserA
		}
		return pairs[i].UserB < pairs[j].UserB
	})
	return pairs, nil
}

func clientProps(organizationID, clientID string) map[string]interface{} {
	return map[string]interface{}{"id": clientID, "organizationId": organizationID}
}

func (s *defaultStore) GetClient(ctx context.Context, organizationID, clientID string) (*store.ClientRow, error) {
	records, err := s.match(ctx, gocypher.NewQueryBuilder().
		Match(gocypher.N("c", LabelClient).WithProperties(clientProps(organizationID, clientID))).
		Return("c"))
	if err != nil {
		return nil, fmt.Errorf("get graph client: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("client %s: %w", clientID, ErrNotSynced)
	}
	if len(records) > 1 {
		return nil, fmt.Errorf("expected 1 record but found %d", len(records))
	}

	node, err := nodeAt(records[0], "c")
	if err != nil {
		return nil, err
	}
	return &store.ClientRow{
		ID:       stringProp(node.Props, "id"),
		Name:     stringProp(node.Props, "name"),
		Industry: stringProp(node.Props, "industry"),
	}, nil
}

// ListClientContributors sums WORKED_ON hours per person over the client's briefs.
func (s *defaultStore) ListClientContributors(
	ctx context.Context,
	organizationID, clientID string,
) ([]store.UserHours, error) {
	records, err := s.match(ctx, gocypher.NewQueryBuilder().
		Match(gocypher.N("c", LabelClient).WithProperties(clientProps(organizationID, clientID))).
		Match(gocypher.N("b", LabelBrief), gocypher.R("f", RelForClient).To(), gocypher.NRef("c")).
		Match(gocypher.N("p", LabelPerson), gocypher.R("w", RelWorkedOn).To(), gocypher.NRef("b")).
		Return("p", "w"))
	if err != nil {
		return nil, fmt.Errorf("list graph client contributors: %w", err)
	}

	byUser := map[string]*store.UserHours{}
	for _, record := range records {
		person, err := nodeAt(record, "p")
		if err != nil {
			return nil, err
		}
		rel, err := relationshipAt(record, "w")
		if err != nil {
			return nil, err
		}
		id := stringProp(person.Props, "id")
		entry, ok := byUser[id]
		if !ok {
			entry = &store.UserHours{UserID: id, Name: stringProp(person.Props, "name")}
			byUser[id] = entry
		}
		entry.Hours += floatProp(rel.Props, "hours")
	}

	contributors := make([]store.UserHours, 0, len(byUser))
	for _, entry := range byUser {
		if entry.Hours > 0 {
			contributors = append(contributors, *entry)
		}
	}
	sort.Slice(contributors, func(i, j int) bool {
		if contributors[i].Hours != contributors[j].Hours {
			return contributors[i].Hours > contributors[j].Hours
		}
		return contributors[i].Name < contributors[j].Name
	})
	return contributors, nil
}

func (s *defaultStore) ListClientAssignees(
	ctx context.Context,
	organizationID, clientID string,
) ([]store.AssigneeCount, error) {
	records, err := s.match(ctx, gocypher.NewQueryBuilder().
		Match(gocypher.N("c", LabelClient).WithProperties(clientProps(organizationID, clientID))).
		Match(gocypher.N("b", LabelBrief), gocypher.R("f", RelForClient).To(), gocypher.NRef("c")).
		Match(gocypher.N("p", LabelPerson), gocypher.R("a", RelAssignedTo).To(), gocypher.NRef("b")).
		Return("p", "b"))
	if err != nil {
		return nil, fmt.Errorf("list graph client assignees: %w", err)
	}

	byUser := map[string]*store.AssigneeCount{}
	for _, record := range records {
		person, err := nodeAt(record, "p")
		if err != nil {
			return nil, err
		}
		id := stringProp(person.Props, "id")
		entry, ok := byUser[id]
		if !ok {
			entry = &store.AssigneeCount{UserID: id, Name: stringProp(person.Props, "name")}
			byUser[id] = entry
		}
		entry.Briefs++
	}

	assignees := make([]store.AssigneeCount, 0, len(byUser))
	for _, entry := range byUser {
		assignees = append(assignees, *entry)
	}
	sort.Slice(assignees, func(i, j int) bool {
		if assignees[i].Briefs != assignees[j].Briefs {
			return assignees[i].Briefs > assignees[j].Briefs
		}
		return assignees[i].Name < assignees[j].Name
	})
	return assignees, nil
}

func (s *defaultStore) CountClientBriefs(ctx context.Context, organizationID, clientID string) (int64, error) {
	records, err := s.match(ctx, gocypher.NewQueryBuilder().
		Match(gocypher.N("c", LabelClient).WithProperties(clientProps(organizationID, clientID))).
		Match(gocypher.N("b", LabelBrief), gocypher.R("f", RelForClient).To(), gocypher.NRef("c")).
		Return("b"))
	if err != nil {
		return 0, fmt.Errorf("count graph client briefs: %w", err)
	}
	return int64(len(records)), nil
}

func (s *defaultStore) ListClients(ctx context.Context, organizationID string) ([]store.ClientRow, error) {
	records, err := s.match(ctx, gocypher.NewQueryBuilder().
		Match(gocypher.N("c", LabelClient).WithProperties(orgProps(organizationID))).
		Return("c"))
	if err != nil {
		return nil, fmt.Errorf("list graph clients: %w", err)
	}

	clients := make([]store.ClientRow, 0, len(records))
	for _, record := range records {
		node, err := nodeAt(record, "c")
		if err != nil {
			return nil, err
		}
		clients = append(clients, store.ClientRow{
			ID:       stringProp(node.Props, "id"),
			Name:     stringProp(node.Props, "name"),
			Industry: stringProp(node.Props, "industry"),
		})
	}
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].Name != clients[j].Name {
			return clients[i].Name < clients[j].Name
		}
		return clients[i].ID < clients[j].ID
	})
	return clients, nil
}

// ListAssignmentCounts counts ASSIGNED_TO briefs per person and client.
func (s *defaultStore) ListAssignmentCounts(ctx context.Context, organizationID string) ([]store.AssignmentCount, error) {
	records, err := s.match(ctx, gocypher.NewQueryBuilder().
		Match(
			gocypher.N("p", LabelPerson).WithProperties(orgProps(organizationID)),
			gocypher.R("a", RelAssignedTo).To(),
			gocypher.N("b", LabelBrief),
		).
		Return("p", "b"))
	if err != nil {
		return nil, fmt.Errorf("list graph assignment counts: %w", err)
	}

	type pairKey struct{ user, client string }
	counts := map[pairKey]int64{}
	for _, record := range records {
		person, err := nodeAt(record, "p")
		if err != nil {
			return nil, err
		}
		brief, err := nodeAt(record, "b")
		if err != nil {
			return nil, err
		}
		counts[pairKey{stringProp(person.Props, "id"), stringProp(brief.Props, "clientId")}]++
	}

	assignments := make([]store.AssignmentCount, 0, len(counts))
	for key, n := range counts {
		assignments = append(assignments, store.AssignmentCount{UserID: key.user, ClientID: key.client, Briefs: n})
	}
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].UserID != assignments[j].UserID {
			return assignments[i].UserID < assignments[j].UserID
		}
		return assignments[i].ClientID < assignments[j].ClientID
	})
	return assignments, nil
}

// ListUserSkills covers active people only.
func (s *defaultStore) ListUserSkills(ctx context.Context, organizationID string) ([]store.UserSkillRow, error) {
	records, err := s.match(ctx, gocypher.NewQueryBuilder().
		Match(
			gocypher.N("p", LabelPerson).WithProperties(orgProps(organizationID)),
			gocypher.R("h", RelHasSkill).To(),
			gocypher.N("s", LabelSkill),
		).
		Return("p", "h", "s"))
	if err != nil {
		return nil, fmt.Errorf("list graph user skills: %w", err)
	}

	skills := make([]store.UserSkillRow, 0, len(records))
	for _, record := range records {
		person, err := nodeAt(record, "p")
		if err != nil {
			return nil, err
		}
		if !boolProp(person.Props, "active") {
			continue
		}
		rel, err := relationshipAt(record, "h")
		if err != nil {
			return nil, err
		}
		skill, err := nodeAt(record, "s")
		if err != nil {
			return nil, err
		}
		skills = append(skills, store.UserSkillRow{
			UserID: stringProp(person.Props, "id"),
			Skill:  stringProp(skill.Props, "name"),
			Level:  intProp(rel.Props, "level"),
		})
	}
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Skill != skills[j].Skill {
			return skills[i].Skill < skills[j].Skill
		}
		return skills[i].UserID < skills[j].UserID
	})
	return skills, nil
}

func (s *defaultStore) ListBriefSkills(ctx context.Context, organizationID string) ([]store.BriefSkillRow, error) {
	records, err := s.match(ctx, gocypher.NewQueryBuilder().
		Match(
			gocypher.N("b", LabelBrief).WithProperties(orgProps(organizationID)),
			gocypher.R("r", RelRequiresSkill).To(),
			gocypher.N("s", LabelSkill),
		).
		Return("b", "s"))
	if err != nil {
		return nil, fmt.Errorf("list graph brief skills: %w", err)
	}

	skills := make([]store.BriefSkillRow, 0, len(records))
	for _, record := range records {
		brief, err := nodeAt(record, "b")
		if err != nil {
			return nil, err
		}
		skill, err := nodeAt(record, "s")
		if err != nil {
			return nil, err
		}
		skills = append(skills, store.BriefSkillRow{
			BriefID: stringProp(brief.Props, "id"),
			Skill:   stringProp(skill.Props, "name"),
			Open:    !domain.BriefStatus(stringProp(brief.Props, "status")).IsTerminal(),
		})
	}
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].Skill != skills[j].Skill {
			return skills[i].Skill < skills[j].Skill
		}
		return skills[i].BriefID < skills[j].BriefID
	})
	return skills, nil
}

func personFromProps(props map[string]any) store.PersonRow {
	return store.PersonRow{
		ID:                  stringProp(props, "id"),
		Name:                stringProp(props, "name"),
		Email:               stringProp(props, "email"),
		Department:          stringProp(props, "department"),
		WeeklyCapacityHours: floatProp(props, "weeklyCapacityHours"),
		Active:              boolProp(props, "active"),
	}
}
