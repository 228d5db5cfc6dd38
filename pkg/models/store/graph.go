package store

// GraphSnapshot is everything the graph projection of one organization is
// built from, read from the relational source of truth.
type GraphSnapshot struct {
	OrganizationID string
	People         []PersonRow
	Clients        []ClientRow
	Briefs         []BriefRow
	Contributions  []Contribution
	Pairs          []CoWorkPair
	UserSkills     []UserSkillRow
	BriefSkills    []BriefSkillRow
}

type SyncCounts struct {
	Nodes int
	Edges int
}
