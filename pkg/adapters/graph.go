package adapters

import (
	"maps"

	"github.com/de-tools/agency-atlas/pkg/models/api"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
)

func MapGraphNodeDomainToApi(n domain.GraphNode) api.GraphNode {
	res := api.GraphNode{
		ID:         n.ID,
		Type:       string(n.Type),
		Label:      n.Label,
		Properties: maps.Clone(n.Properties),
	}
	if res.Properties == nil {
		res.Properties = map[string]any{}
	}
	if n.Metrics != nil {
		res.Metrics = &api.NodeMetrics{
			Degree:      n.Metrics.Degree,
			Betweenness: n.Metrics.Betweenness,
			PageRank:    n.Metrics.PageRank,
		}
	}
	return res
}

func MapGraphEdgeDomainToApi(e domain.GraphEdge) api.GraphEdge {
	res := api.GraphEdge{
		ID:         e.ID,
		Source:     e.Source,
		Target:     e.Target,
		Type:       e.Type,
		Weight:     e.Weight,
		Properties: maps.Clone(e.Properties),
	}
	if res.Properties == nil {
		res.Properties = map[string]any{}
	}
	return res
}

func mapNodes(nodes []domain.GraphNode) []api.GraphNode {
	res := make([]api.GraphNode, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, MapGraphNodeDomainToApi(n))
	}
	return res
}

func mapEdges(edges []domain.GraphEdge) []api.GraphEdge {
	res := make([]api.GraphEdge, 0, len(edges))
	for _, e := range edges {
		res = append(res, MapGraphEdgeDomainToApi(e))
	}
	return res
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func MapCollaborationNetworkDomainToApi(n domain.CollaborationNetwork) api.CollaborationNetwork {
	res := api.CollaborationNetwork{
		Nodes:               mapNodes(n.Nodes),
		Edges:               mapEdges(n.Edges),
		Communities:         make([]api.Community, 0, len(n.Communities)),
		CommunitiesDetected: n.CommunitiesDetected,
		KeyConnectors:       make([]api.KeyConnector, 0, len(n.KeyConnectors)),
		IsolatedNodes:       nonNil(n.IsolatedNodes),
		Backend:             n.Backend,
	}
	for _, c := range n.Communities {
		res.Communities = append(res.Communities, api.Community{ID: c.ID, Members: nonNil(c.Members)})
	}
	for _, k := range n.KeyConnectors {
		res.KeyConnectors = append(res.KeyConnectors, api.KeyConnector(k))
	}
	return res
}

func MapClientRelationshipGraphDomainToApi(g domain.ClientRelationshipGraph) api.ClientRelationshipGraph {
	res := api.ClientRelationshipGraph{
		Client:          MapClientDomainToApi(g.Client),
		Nodes:           mapNodes(g.Nodes),
		Edges:           mapEdges(g.Edges),
		RiskIndicators:  make([]api.RiskIndicator, 0, len(g.RiskIndicators)),
		PrimaryContacts: nonNil(g.PrimaryContacts),
		TotalHours:      g.TotalHours,
		TotalBriefs:     g.TotalBriefs,
		Backend:         g.Backend,
	}
	for _, r := range g.RiskIndicators {
		res.RiskIndicators = append(res.RiskIndicators, api.RiskIndicator{
			Type:             string(r.Type),
			Severity:         MapSeverityDomainToApi(r.Severity),
			Description:      r.Description,
			Value:            r.Value,
			AffectedEntities: nonNil(r.AffectedEntities),
		})
	}
	return res
}

func MapSkillNetworkDomainToApi(n domain.SkillNetwork) api.SkillNetwork {
	res := api.SkillNetwork{
		Nodes:    mapNodes(n.Nodes),
		Edges:    mapEdges(n.Edges),
		Gaps:     make([]api.SkillGap, 0, len(n.Gaps)),
		Clusters: make([]api.SkillCluster, 0, len(n.Clusters)),
		Backend:  n.Backend,
	}
	for _, g := range n.Gaps {
		res.Gaps = append(res.Gaps, api.SkillGap{
			Skill:    g.Skill,
			Demand:   g.Demand,
			Supply:   g.Supply,
			Severity: MapSeverityDomainToApi(g.Severity),
		})
	}
	for _, c := range n.Clusters {
		res.Clusters = append(res.Clusters, api.SkillCluster{
			Name:           c.Name,
			Skills:         nonNil(c.Skills),
			Experts:        nonNil(c.Experts),
			AvgProficiency: c.AvgProficiency,
		})
	}
	return res
}

func MapMultiPartyGraphDomainToApi(g domain.MultiPartyGraph) api.MultiPartyGraph {
	return api.MultiPartyGraph{
		Nodes:   mapNodes(g.Nodes),
		Edges:   mapEdges(g.Edges),
		Summary: api.GraphSummary(g.Summary),
		Backend: g.Backend,
	}
}

func MapSyncLogDomainToApi(l domain.SyncLog) api.SyncLog {
	return api.SyncLog{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		Status:         string(l.Status),
		Error:          l.Error,
		NodesSynced:    l.NodesSynced,
		EdgesSynced:    l.EdgesSynced,
		StartedAt:      l.StartedAt,
		FinishedAt:     l.FinishedAt,
	}
}
