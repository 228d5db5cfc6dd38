package graphdb

import (
	"context"

	"github.com/de-tools/agency-atlas/pkg/models/store"
)

// Every statement is an UNWIND over a batch of rows with MERGE on the entity
// key, so re-running a sync updates in place and never duplicates.
const (
	upsertPeople = `
		UNWIND $rows AS row
		MERGE (p:Person {id: row.id})
		SET p.organizationId = $organizationId,
			p.name = row.name,
			p.email = row.email,
			p.department = row.department,
			p.weeklyCapacityHours = row.weeklyCapacityHours,
			p.active = row.active
	`
	upsertClients = `
		UNWIND $rows AS row
		MERGE (c:Client {id: row.id})
		SET c.organizationId = $organizationId,
			c.name = row.name,
			c.industry = row.industry
	`
	upsertBriefs = `
		UNWIND $rows AS row
		MERGE (b:Brief {id: row.id})
		SET b.organizationId = $organizationId,
			b.clientId = row.clientId,
			b.title = row.title,
			b.briefType = row.briefType,
			b.status = row.status,
			b.deadline = row.deadline,
			b.createdAt = row.createdAt
		WITH b, row
		MATCH (c:Client {id: row.clientId})
		MERGE (b)-[:FOR_CLIENT]->(c)
	`
	upsertAssignments = `
		UNWIND $rows AS row
		MATCH (p:Person {id: row.userId})
		MATCH (b:Brief {id: row.briefId})
		MERGE (p)-[:ASSIGNED_TO]->(b)
	`
	upsertContributions = `
		UNWIND $rows AS row
		MATCH (p:Person {id: row.userId})
		MATCH (b:Brief {id: row.briefId})
		MERGE (p)-[w:WORKED_ON]->(b)
		SET w.hours = row.hours
	`
	upsertCollaborations = `
		UNWIND $rows AS row
		MATCH (a:Person {id: row.userA})
		MATCH (b:Person {id: row.userB})
		MERGE (a)-[r:COLLABORATED_WITH]->(b)
		SET r.sharedBriefs = row.sharedBriefs
	`
	upsertUserSkills = `
		UNWIND $rows AS row
		MATCH (p:Person {id: row.userId})
		MERGE (s:Skill {organizationId: $organizationId, name: row.skill})
		MERGE (p)-[h:HAS_SKILL]->(s)
		SET h.level = row.level
	`
	upsertBriefSkills = `
		UNWIND $rows AS row
		MATCH (b:Brief {id: row.briefId})
		MERGE (s:Skill {organizationId: $organizationId, name: row.skill})
		MERGE (b)-[:REQUIRES_SKILL]->(s)
	`
)

// SyncOrganization writes the snapshot in a single transaction. Nodes and
// relationships that disappeared from the source are left in place until they
// are overwritten by a later sync.
func (s *defaultStore) SyncOrganization(ctx context.Context, snapshot store.GraphSnapshot) (store.SyncCounts, error) {
	statements, counts := syncStatements(snapshot)
	if err := s.runner.ExecuteWrite(ctx, statements); err != nil {
		return store.SyncCounts{}, err
	}
	return counts, nil
}

func syncStatements(snapshot store.GraphSnapshot) ([]Statement, store.SyncCounts) {
	people := make([]map[string]any, 0, len(snapshot.People))
	for _, p := range snapshot.People {
		people = append(people, map[string]any{
			"id":                  p.ID,
			"name":                p.Name,
			"email":               p.Email,
			"department":          p.Department,
			"weeklyCapacityHours": p.WeeklyCapacityHours,
			"active":              p.Active,
		})
	}

	clients := make([]map[string]any, 0, len(snapshot.Clients))
	for _, c := range snapshot.Clients {
		clients = append(clients, map[string]any{
			"id":       c.ID,
			"name":     c.Name,
			"industry": c.Industry,
		})
	}

	briefs := make([]map[string]any, 0, len(snapshot.Briefs))
	assignments := make([]map[string]any, 0)
	for _, b := range snapshot.Briefs {
		var deadline any
		if b.Deadline.Valid {
			deadline = b.Deadline.Time
		}
		briefs = append(briefs, map[string]any{
			"id":        b.ID,
			"clientId":  b.ClientID,
			"title":     b.Title,
			"briefType": b.BriefType,
			"status":    b.Status,
			"deadline":  deadline,
			"createdAt": b.CreatedAt,
		})
		if b.AssigneeID.Valid {
			assignments = append(assignments, map[string]any{
				"userId":  b.AssigneeID.String,
				"briefId": b.ID,
			})
		}
	}

	contributions := make([]map[string]any, 0, len(snapshot.Contributions))
	for _, c := range snapshot.Contributions {
		contributions = append(contributions, map[string]any{
			"userId":  c.UserID,
			"briefId": c.BriefID,
			"hours":   c.Hours,
		})
	}

	pairs := make([]map[string]any, 0, len(snapshot.Pairs))
	for _, p := range snapshot.Pairs {
		pairs = append(pairs, map[string]any{
			"userA":        p.UserA,
			"userB":        p.UserB,
			"sharedBriefs": p.SharedBriefs,
		})
	}

	skills := map[string]struct{}{}
	userSkills := make([]map[string]any, 0, len(snapshot.UserSkills))
	for _, us := range snapshot.UserSkills {
		skills[us.Skill] = struct{}{}
		userSkills = append(userSkills, map[string]any{
			"userId": us.UserID,
			"skill":  us.Skill,
			"level":  us.Level,
		})
	}

	briefSkills := make([]map[string]any, 0, len(snapshot.BriefSkills))
	for _, bs := range snapshot.BriefSkills {
		skills[bs.Skill] = struct{}{}
		briefSkills = append(briefSkills, map[string]any{
			"briefId": bs.BriefID,
			"skill":   bs.Skill,
		})
	}

	batch := func(query string, rows []map[string]any) Statement {
		return Statement{
			Query: query,
			Params: map[string]any{
				"organizationId": snapshot.OrganizationID,
				"rows":           rows,
			},
		}
	}

	statements := []Statement{
		batch(upsertPeople, people),
		batch(upsertClients, clients),
		batch(upsertBriefs, briefs),
		batch(upsertAssignments, assignments),
		batch(upsertContributions, contributions),
		batch(upsertCollaborations, pairs),
		batch(upsertUserSkills, userSkills),
		batch(upsertBriefSkills, briefSkills),
	}

	counts := store.SyncCounts{
		Nodes: len(people) + len(clients) + len(briefs) + len(skills),
		Edges: len(briefs) + len(assignments) + len(contributions) + len(pairs) + len(userSkills) + len(briefSkills),
	}
	return statements, counts
}
