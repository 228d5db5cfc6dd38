package domain

type NodeType string

const (
	NodeTypeUser       NodeType = "user"
	NodeTypeClient     NodeType = "client"
	NodeTypeBrief      NodeType = "brief"
	NodeTypeDepartment NodeType = "department"
	NodeTypeSkill      NodeType = "skill"
)

const (
	EdgeTypeCollaboratedWith = "COLLABORATED_WITH"
	EdgeTypeWorksFor         = "WORKS_FOR"
	EdgeTypeHasSkill         = "HAS_SKILL"
)

// NodeMetrics are computed per request. Betweenness and PageRank are nil when
// the backend that served the request does not compute them.
type NodeMetrics struct {
	Degree      int
	Betweenness *float64
	PageRank    *float64
}

type GraphNode struct {
	ID         string
	Type       NodeType
	Label      string
	Properties map[string]any
	Metrics    *NodeMetrics
}

// GraphEdge is undirected for collaboration edges (stored once per unordered
// pair, Source < Target) and directed otherwise.
type GraphEdge struct {
	ID         string
	Source     string
	Target     string
	Type       string
	Weight     float64
	Properties map[string]any
}

type Community struct {
	ID      int
	Members []string
}

type KeyConnector struct {
	NodeID         string
	Label          string
	Degree         int
	InfluenceScore float64
}

type CollaborationNetwork struct {
	Nodes               []GraphNode
	Edges               []GraphEdge
	Communities         []Community
	CommunitiesDetected bool
	KeyConnectors       []KeyConnector
	IsolatedNodes       []string
	Backend             string
}

type RiskType string

const (
	RiskConcentration RiskType = "concentration"
	RiskCapacity      RiskType = "capacity"
)

type RiskIndicator struct {
	Type             RiskType
	Severity         Severity
	Description      string
	Value            float64
	AffectedEntities []string
}

type ClientRelationshipGraph struct {
	Client         Client
	Nodes          []GraphNode
	Edges          []GraphEdge
	RiskIndicators []RiskIndicator
	// PrimaryContacts are the names of the three people with the most hours.
	PrimaryContacts []string
	TotalHours      float64
	TotalBriefs     int64
	Backend         string
}

type SkillGap struct {
	Skill    string
	Demand   int64
	Supply   int64
	Severity Severity
}

// SkillCluster groups the skills held within one department.
type SkillCluster struct {
	Name           string
	Skills         []string
	Experts        []string
	AvgProficiency float64
}

type SkillNetwork struct {
	Nodes    []GraphNode
	Edges    []GraphEdge
	Gaps     []SkillGap
	Clusters []SkillCluster
	Backend  string
}

type GraphSummary struct {
	NodeCount int
	EdgeCount int
	Density   float64
	Clusters  int
}

// MultiPartyGraph links active people to the clients whose briefs they are
// assigned to.
type MultiPartyGraph struct {
	Nodes   []GraphNode
	Edges   []GraphEdge
	Summary GraphSummary
	Backend string
}
