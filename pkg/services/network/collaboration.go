package network

import (
	"fmt"
	"sort"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/numeric"
)

func collaborationEdgeID(a, b string) string {
	return fmt.Sprintf("collab:%s:%s", a, b)
}

func personNode(p store.PersonRow) domain.GraphNode {
	return domain.GraphNode{
		ID:    p.ID,
		Type:  domain.NodeTypeUser,
		Label: p.Name,
		Properties: map[string]any{
			"department":          p.Department,
			"weeklyCapacityHours": p.WeeklyCapacityHours,
			"active":              p.Active,
		},
	}
}

// assembleCollaboration turns source data into a collaboration network. The
// node and edge sets depend only on src, never on which backend produced it;
// native adds the centrality measures only the graph backend is trusted with.
func assembleCollaboration(src CollaborationSource, keyConnectorLimit int, native bool) domain.CollaborationNetwork {
	people := make(map[string]store.PersonRow, len(src.People))
	for _, p := range src.People {
		people[p.ID] = p
	}

	type pairKey struct{ a, b string }
	shared := make(map[pairKey]int64)
	for _, pair := range src.Pairs {
		a, b := pair.UserA, pair.UserB
		if a == b || pair.SharedBriefs <= 0 {
			continue
		}
		if b < a {
			a, b = b, a
		}
		key := pairKey{a, b}
		if pair.SharedBriefs > shared[key] {
			shared[key] = pair.SharedBriefs
		}
	}

	// base population is the active people plus anyone who collaborated
	included := make(map[string]bool)
	for _, p := range src.People {
		if p.Active {
			included[p.ID] = true
		}
	}
	for key := range shared {
		included[key.a] = true
		included[key.b] = true
	}

	nodes := make([]domain.GraphNode, 0, len(included))
	for id := range included {
		p, ok := people[id]
		if !ok {
			p = store.PersonRow{ID: id, Name: id}
		}
		nodes = append(nodes, personNode(p))
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Label != nodes[j].Label {
			return nodes[i].Label < nodes[j].Label
		}
		return nodes[i].ID < nodes[j].ID
	})
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	edges := make([]domain.GraphEdge, 0, len(shared))
	for key, count := range shared {
		edges = append(edges, domain.GraphEdge{
			ID:     collaborationEdgeID(key.a, key.b),
			Source: key.a,
			Target: key.b,
			Type:   domain.EdgeTypeCollaboratedWith,
			Weight: float64(count),
			Properties: map[string]any{
				"sharedBriefs": count,
			},
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].ID < edges[j].ID
	})

	graph := newAdjacency(len(nodes))
	degree := make([]int, len(nodes))
	for _, e := range edges {
		u, v := index[e.Source], index[e.Target]
		graph.connect(u, v, e.Weight)
		degree[u]++
		degree[v]++
	}

	var ranks, between []float64
	if native {
		ranks = pageRank(graph)
		between = betweenness(graph)
	}
	for i := range nodes {
		m := &domain.NodeMetrics{Degree: degree[i]}
		if native {
			pr := numeric.Round(ranks[i], 4)
			bc := numeric.Round(between[i], 4)
			m.PageRank = &pr
			m.Betweenness = &bc
		}
		nodes[i].Metrics = m
	}

	network := domain.CollaborationNetwork{
		Nodes:         nodes,
		Edges:         edges,
		Communities:   []domain.Community{},
		KeyConnectors: keyConnectors(nodes, keyConnectorLimit),
		IsolatedNodes: isolated(nodes, people),
	}
	if native {
		network.CommunitiesDetected = true
		for i, members := range communities(graph) {
			ids := make([]string, len(members))
			for j, m := range members {
				ids[j] = nodes[m].ID
			}
			network.Communities = append(network.Communities, domain.Community{ID: i, Members: ids})
		}
	}
	return network
}

func keyConnectors(nodes []domain.GraphNode, limit int) []domain.KeyConnector {
	ranked := make([]domain.GraphNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Metrics.Degree > 0 {
			ranked = append(ranked, n)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Metrics.Degree > ranked[j].Metrics.Degree
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]domain.KeyConnector, 0, len(ranked))
	for _, n := range ranked {
		out = append(out, domain.KeyConnector{
			NodeID:         n.ID,
			Label:          n.Label,
			Degree:         n.Metrics.Degree,
			InfluenceScore: numeric.Round2(float64(n.Metrics.Degree) / float64(len(nodes))),
		})
	}
	return out
}

// isolated lists the names of active people without any collaboration edge.
func isolated(nodes []domain.GraphNode, people map[string]store.PersonRow) []string {
	names := make([]string, 0)
	for _, n := range nodes {
		p, ok := people[n.ID]
		if ok && p.Active && n.Metrics.Degree == 0 {
			names = append(names, n.Label)
		}
	}
	sort.Strings(names)
	return names
}
