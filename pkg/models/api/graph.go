package api

import "time"

// NodeMetrics leaves betweenness and pageRank null when the serving backend
// did not compute them.
type NodeMetrics struct {
	Degree      int      `json:"degree"`
	Betweenness *float64 `json:"betweenness"`
	PageRank    *float64 `json:"pageRank"`
}

type GraphNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties"`
	Metrics    *NodeMetrics   `json:"metrics,omitempty"`
}

type GraphEdge struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Type       string         `json:"type"`
	Weight     float64        `json:"weight"`
	Properties map[string]any `json:"properties"`
}

type Community struct {
	ID      int      `json:"id"`
	Members []string `json:"members"`
}

type KeyConnector struct {
	NodeID         string  `json:"nodeId"`
	Label          string  `json:"label"`
	Degree         int     `json:"degree"`
	InfluenceScore float64 `json:"influenceScore"`
}

type CollaborationNetwork struct {
	Nodes               []GraphNode    `json:"nodes"`
	Edges               []GraphEdge    `json:"edges"`
	Communities         []Community    `json:"communities"`
	CommunitiesDetected bool           `json:"communitiesDetected"`
	KeyConnectors       []KeyConnector `json:"keyConnectors"`
	IsolatedNodes       []string       `json:"isolatedNodes"`
	Backend             string         `json:"backend"`
}

type RiskIndicator struct {
	Type             string   `json:"type"`
	Severity         Severity `json:"severity"`
	Description      string   `json:"description"`
	Value            float64  `json:"value"`
	AffectedEntities []string `json:"affectedEntities"`
}

type ClientRelationshipGraph struct {
	Client          Client          `json:"client"`
	Nodes           []GraphNode     `json:"nodes"`
	Edges           []GraphEdge     `json:"edges"`
	RiskIndicators  []RiskIndicator `json:"riskIndicators"`
	PrimaryContacts []string        `json:"primaryContacts"`
	TotalHours      float64         `json:"totalHours"`
	TotalBriefs     int64           `json:"totalBriefs"`
	Backend         string          `json:"backend"`
}

type SkillGap struct {
	Skill    string   `json:"skill"`
	Demand   int64    `json:"demand"`
	Supply   int64    `json:"supply"`
	Severity Severity `json:"severity"`
}

type SkillCluster struct {
	Name           string   `json:"name"`
	Skills         []string `json:"skills"`
	Experts        []string `json:"experts"`
	AvgProficiency float64  `json:"avgProficiency"`
}

type SkillNetwork struct {
	Nodes    []GraphNode    `json:"nodes"`
	Edges    []GraphEdge    `json:"edges"`
	Gaps     []SkillGap     `json:"gaps"`
	Clusters []SkillCluster `json:"clusters"`
	Backend  string         `json:"backend"`
}

type GraphSummary struct {
	NodeCount int     `json:"nodeCount"`
	EdgeCount int     `json:"edgeCount"`
	Density   float64 `json:"density"`
	Clusters  int     `json:"clusters"`
}

type MultiPartyGraph struct {
	Nodes   []GraphNode  `json:"nodes"`
	Edges   []GraphEdge  `json:"edges"`
	Summary GraphSummary `json:"summary"`
	Backend string       `json:"backend"`
}

type SyncLog struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Status         string    `json:"status"`
	Error          *string   `json:"error"`
	NodesSynced    int       `json:"nodesSynced"`
	EdgesSynced    int       `json:"edgesSynced"`
	StartedAt      time.Time `json:"startedAt"`
	FinishedAt     time.Time `json:"finishedAt"`
}
