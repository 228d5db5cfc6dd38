package network

import (
	"fmt"
	"sort"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/numeric"
)

const (
	concentrationShare    = 0.7
	capacityShare         = 0.5
	capacityMinimumBriefs = 5
	primaryContactCount   = 3
)

type clientMember struct {
	id, name string
	hours    float64
	assigned int64
}

// assembleClientGraph links everyone who logged time for the client to the
// client node and evaluates the concentration and capacity risk rules.
func assembleClientGraph(src ClientSource) domain.ClientRelationshipGraph {
	client := domain.Client{ID: src.Client.ID, Name: src.Client.Name, Industry: src.Client.Industry}

	members := make(map[string]*clientMember)
	lookup := func(id, name string) *clientMember {
		m, ok := members[id]
		if !ok {
			m = &clientMember{id: id, name: name}
			members[id] = m
		}
		return m
	}
	for _, c := range src.Contributors {
		lookup(c.UserID, c.Name).hours += c.Hours
	}
	for _, a := range src.Assignees {
		lookup(a.UserID, a.Name).assigned += a.Briefs
	}

	ordered := make([]*clientMember, 0, len(members))
	for _, m := range members {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].hours != ordered[j].hours {
			return ordered[i].hours > ordered[j].hours
		}
		return ordered[i].name < ordered[j].name
	})

	nodes := []domain.GraphNode{{
		ID:         client.ID,
		Type:       domain.NodeTypeClient,
		Label:      client.Name,
		Properties: map[string]any{"industry": client.Industry, "totalBriefs": src.TotalBriefs},
		Metrics:    &domain.NodeMetrics{},
	}}
	edges := make([]domain.GraphEdge, 0, len(ordered))

	var totalHours float64
	for _, m := range ordered {
		degree := 0
		if m.hours > 0 {
			degree = 1
			totalHours += m.hours
			edges = append(edges, domain.GraphEdge{
				ID:     fmt.Sprintf("works_for:%s:%s", m.id, client.ID),
				Source: m.id,
				Target: client.ID,
				Type:   domain.EdgeTypeWorksFor,
				Weight: numeric.Round2(m.hours),
				Properties: map[string]any{
					"hours":          numeric.Round2(m.hours),
					"assignedBriefs": m.assigned,
				},
			})
		}
		nodes = append(nodes, domain.GraphNode{
			ID:    m.id,
			Type:  domain.NodeTypeUser,
			Label: m.name,
			Properties: map[string]any{
				"hoursOnClient":  numeric.Round2(m.hours),
				"assignedBriefs": m.assigned,
			},
			Metrics: &domain.NodeMetrics{Degree: degree},
		})
	}
	nodes[0].Metrics.Degree = len(edges)

	contacts := make([]string, 0, primaryContactCount)
	for _, m := range ordered {
		if len(contacts) == primaryContactCount || m.hours <= 0 {
			break
		}
		contacts = append(contacts, m.name)
	}

	graph := domain.ClientRelationshipGraph{
		Client:          client,
		Nodes:           nodes,
		Edges:           edges,
		RiskIndicators:  []domain.RiskIndicator{},
		PrimaryContacts: contacts,
		TotalHours:      numeric.Round2(totalHours),
		TotalBriefs:     src.TotalBriefs,
	}

	if risk, ok := concentrationRisk(ordered, totalHours); ok {
		graph.RiskIndicators = append(graph.RiskIndicators, risk)
	}

	var busiest *clientMember
	for _, m := range ordered {
		if m.assigned > 0 && (busiest == nil || m.assigned > busiest.assigned) {
			busiest = m
		}
	}
	if busiest != nil {
		if risk, ok := capacityRisk(busiest.name, busiest.assigned, src.TotalBriefs); ok {
			graph.RiskIndicators = append(graph.RiskIndicators, risk)
		}
	}
	return graph
}

// concentrationRisk fires when the two people with the most hours carry more
// than 70% of the client's hours. ordered is sorted by hours, descending.
func concentrationRisk(ordered []*clientMember, totalHours float64) (domain.RiskIndicator, bool) {
	if totalHours <= 0 {
		return domain.RiskIndicator{}, false
	}
	var topHours float64
	affected := make([]string, 0, 2)
	for _, m := range ordered {
		if len(affected) == 2 || m.hours <= 0 {
			break
		}
		topHours += m.hours
		affected = append(affected, m.name)
	}
	share := topHours / totalHours
	if share <= concentrationShare {
		return domain.RiskIndicator{}, false
	}
	return domain.RiskIndicator{
		Type:             domain.RiskConcentration,
		Severity:         domain.SeverityHigh,
		Description:      fmt.Sprintf("Top contributors carry %d%% of client hours", numeric.Percent(topHours, totalHours)),
		Value:            numeric.Round2(share),
		AffectedEntities: affected,
	}, true
}

// capacityRisk fires when one assignee holds more than half of the briefs of
// a client with more than five briefs.
func capacityRisk(name string, assigned, totalBriefs int64) (domain.RiskIndicator, bool) {
	if totalBriefs <= capacityMinimumBriefs {
		return domain.RiskIndicator{}, false
	}
	share := float64(assigned) / float64(totalBriefs)
	if share <= capacityShare {
		return domain.RiskIndicator{}, false
	}
	return domain.RiskIndicator{
		Type:             domain.RiskCapacity,
		Severity:         domain.SeverityMedium,
		Description:      fmt.Sprintf("One team member is assigned %d of %d briefs", assigned, totalBriefs),
		Value:            numeric.Round2(share),
		AffectedEntities: []string{name},
	}, true
}
