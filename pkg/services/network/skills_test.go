package network

import (
	"testing"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBriefs(skill string, open bool, ids ...string) []store.BriefSkillRow {
	rows := make([]store.BriefSkillRow, len(ids))
	for i, id := range ids {
		rows[i] = store.BriefSkillRow{BriefID: id, Skill: skill, Open: open}
	}
	return rows
}

func TestAssembleSkills(t *testing.T) {
	src := SkillSource{
		People: people("Ana", "Ben"),
		UserSkills: []store.UserSkillRow{
			{UserID: "u-Ana", Skill: "design", Level: 3},
			{UserID: "u-Ben", Skill: "design", Level: 2},
			{UserID: "u-Ben", Skill: "video", Level: 1},
			// not part of the active population
			{UserID: "u-Gone", Skill: "copy", Level: 5},
		},
	}
	src.BriefSkills = append(src.BriefSkills, openBriefs("design", true, "b1", "b2", "b3", "b4", "b5")...)
	src.BriefSkills = append(src.BriefSkills, openBriefs("copy", true, "b6")...)
	src.BriefSkills = append(src.BriefSkills, openBriefs("video", false, "b7")...)
	src.BriefSkills = append(src.BriefSkills, openBriefs("motion", true, "b8", "b9", "b10")...)

	network := assembleSkills(src)

	require.Len(t, network.Edges, 3)
	assert.Equal(t, "has_skill:u-Ana:design", network.Edges[0].ID)
	assert.Equal(t, "skill:design", network.Edges[0].Target)
	assert.Equal(t, 3.0, network.Edges[0].Weight)

	// two people and four skills
	require.Len(t, network.Nodes, 6)
	assert.Equal(t, domain.NodeTypeUser, network.Nodes[0].Type)
	assert.Equal(t, 2, network.Nodes[1].Metrics.Degree)
	assert.Equal(t, "copy", network.Nodes[2].Label)
	assert.Equal(t, domain.NodeTypeSkill, network.Nodes[2].Type)

	require.Len(t, network.Gaps, 3)
	assert.Equal(t, domain.SkillGap{Skill: "motion", Demand: 3, Supply: 0, Severity: domain.SeverityHigh}, network.Gaps[0])
	assert.Equal(t, domain.SkillGap{Skill: "copy", Demand: 1, Supply: 0, Severity: domain.SeverityHigh}, network.Gaps[1])
	assert.Equal(t, domain.SkillGap{Skill: "design", Demand: 5, Supply: 2, Severity: domain.SeverityMedium}, network.Gaps[2])
}

func TestAssembleSkills_Clusters(t *testing.T) {
	src := SkillSource{
		People: []store.PersonRow{
			{ID: "u-Ana", Name: "Ana", Department: "Design", Active: true},
			{ID: "u-Ben", Name: "Ben", Department: "Design", Active: true},
			{ID: "u-Cy", Name: "Cy", Department: "Strategy", Active: true},
			{ID: "u-Dee", Name: "Dee", Active: true},
			{ID: "u-Eve", Name: "Eve", Department: "Production", Active: true},
		},
		UserSkills: []store.UserSkillRow{
			{UserID: "u-Ben", Skill: "motion", Level: 4},
			{UserID: "u-Ana", Skill: "branding", Level: 5},
			{UserID: "u-Ana", Skill: "motion", Level: 2},
			{UserID: "u-Cy", Skill: "research", Level: 3},
			// no department
			{UserID: "u-Dee", Skill: "copy", Level: 5},
		},
	}

	clusters := assembleSkills(src).Clusters

	// Production holds no skills and forms no cluster
	assert.Equal(t, []domain.SkillCluster{
		{Name: "Design", Skills: []string{"branding", "motion"}, Experts: []string{"Ana", "Ben"}, AvgProficiency: 3.7},
		{Name: "Strategy", Skills: []string{"research"}, Experts: []string{"Cy"}, AvgProficiency: 3},
	}, clusters)
}

func TestGapSeverity(t *testing.T) {
	tests := []struct {
		demand, supply int64
		severity       domain.Severity
		gap            bool
	}{
		{0, 0, domain.SeverityLow, false},
		{1, 0, domain.SeverityHigh, true},
		{5, 2, domain.SeverityMedium, true},
		{4, 2, domain.SeverityLow, false},
		{1, 3, domain.SeverityLow, false},
	}

	for _, tt := range tests {
		severity, gap := gapSeverity(tt.demand, tt.supply)
		assert.Equal(t, tt.gap, gap, "demand=%d supply=%d", tt.demand, tt.supply)
		assert.Equal(t, tt.severity, severity, "demand=%d supply=%d", tt.demand, tt.supply)
	}
}
