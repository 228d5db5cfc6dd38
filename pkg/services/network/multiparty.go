package network

import (
	"fmt"
	"sort"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/numeric"
)

func clientNode(c store.ClientRow) domain.GraphNode {
	return domain.GraphNode{
		ID:         c.ID,
		Type:       domain.NodeTypeClient,
		Label:      c.Name,
		Properties: map[string]any{"industry": c.Industry},
	}
}

// assembleMultiParty builds the bipartite people-client graph. An edge joins a
// person to a client when the person is assigned at least one of the client's
// briefs; its weight is the number of such briefs. Density is measured against
// every possible person-client pair and clusters count the departments present.
func assembleMultiParty(src MultiPartySource) domain.MultiPartyGraph {
	people := append(src.People[:0:0], src.People...)
	sort.Slice(people, func(i, j int) bool {
		if people[i].Name != people[j].Name {
			return people[i].Name < people[j].Name
		}
		return people[i].ID < people[j].ID
	})
	clients := append(src.Clients[:0:0], src.Clients...)
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].Name != clients[j].Name {
			return clients[i].Name < clients[j].Name
		}
		return clients[i].ID < clients[j].ID
	})

	isPerson := make(map[string]bool, len(people))
	departments := make(map[string]bool)
	for _, p := range people {
		isPerson[p.ID] = true
		if p.Department != "" {
			departments[p.Department] = true
		}
	}
	isClient := make(map[string]bool, len(clients))
	for _, c := range clients {
		isClient[c.ID] = true
	}

	type pairKey struct{ user, client string }
	briefs := make(map[pairKey]int64)
	for _, a := range src.Assignments {
		if a.Briefs <= 0 || !isPerson[a.UserID] || !isClient[a.ClientID] {
			continue
		}
		briefs[pairKey{a.UserID, a.ClientID}] += a.Briefs
	}

	degree := make(map[string]int)
	edges := make([]domain.GraphEdge, 0, len(briefs))
	for key, count := range briefs {
		degree[key.user]++
		degree[key.client]++
		edges = append(edges, domain.GraphEdge{
			ID:         fmt.Sprintf("assigned:%s:%s", key.user, key.client),
			Source:     key.user,
			Target:     key.client,
			Type:       domain.EdgeTypeWorksFor,
			Weight:     float64(count),
			Properties: map[string]any{"briefCount": count},
		})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	nodes := make([]domain.GraphNode, 0, len(people)+len(clients))
	for _, p := range people {
		n := personNode(p)
		n.Metrics = &domain.NodeMetrics{Degree: degree[p.ID]}
		nodes = append(nodes, n)
	}
	for _, c := range clients {
		n := clientNode(c)
		n.Metrics = &domain.NodeMetrics{Degree: degree[c.ID]}
		nodes = append(nodes, n)
	}

	var density float64
	if pairs := len(people) * len(clients); pairs > 0 {
		density = numeric.Round(float64(len(edges))/float64(pairs), 3)
	}

	return domain.MultiPartyGraph{
		Nodes: nodes,
		Edges: edges,
		Summary: domain.GraphSummary{
			NodeCount: len(nodes),
			EdgeCount: len(edges),
			Density:   density,
			Clusters:  len(departments),
		},
	}
}
