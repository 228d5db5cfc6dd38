package network

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/numeric"
)

const gapRatio = 2

func skillNodeID(skill string) string {
	return "skill:" + skill
}

// assembleSkills builds the person-skill network and the skill gaps. Demand
// is the number of open briefs requiring a skill, supply the number of active
// people holding it.
func assembleSkills(src SkillSource) domain.SkillNetwork {
	active := make(map[string]bool, len(src.People))
	for _, p := range src.People {
		active[p.ID] = true
	}

	supply := make(map[string]map[string]bool)
	demand := make(map[string]map[string]bool)
	skills := make(map[string]bool)
	degree := make(map[string]int)

	edges := make([]domain.GraphEdge, 0, len(src.UserSkills))
	seen := make(map[string]bool)
	for _, us := range src.UserSkills {
		if !active[us.UserID] {
			continue
		}
		id := fmt.Sprintf("has_skill:%s:%s", us.UserID, us.Skill)
		if seen[id] {
			continue
		}
		seen[id] = true
		skills[us.Skill] = true
		if supply[us.Skill] == nil {
			supply[us.Skill] = make(map[string]bool)
		}
		supply[us.Skill][us.UserID] = true
		degree[us.UserID]++
		degree[skillNodeID(us.Skill)]++
		edges = append(edges, domain.GraphEdge{
			ID:         id,
			Source:     us.UserID,
			Target:     skillNodeID(us.Skill),
			Type:       domain.EdgeTypeHasSkill,
			Weight:     float64(us.Level),
			Properties: map[string]any{"level": us.Level},
		})
	}
	for _, bs := range src.BriefSkills {
		skills[bs.Skill] = true
		if !bs.Open {
			continue
		}
		if demand[bs.Skill] == nil {
			demand[bs.Skill] = make(map[string]bool)
		}
		demand[bs.Skill][bs.BriefID] = true
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	nodes := make([]domain.GraphNode, 0, len(src.People)+len(skills))
	people := append(src.People[:0:0], src.People...)
	sort.Slice(people, func(i, j int) bool {
		if people[i].Name != people[j].Name {
			return people[i].Name < people[j].Name
		}
		return people[i].ID < people[j].ID
	})
	for _, p := range people {
		n := personNode(p)
		n.Metrics = &domain.NodeMetrics{Degree: degree[p.ID]}
		nodes = append(nodes, n)
	}

	names := make([]string, 0, len(skills))
	for s := range skills {
		names = append(names, s)
	}
	sort.Strings(names)

	gaps := make([]domain.SkillGap, 0)
	for _, s := range names {
		d, sup := int64(len(demand[s])), int64(len(supply[s]))
		nodes = append(nodes, domain.GraphNode{
			ID:         skillNodeID(s),
			Type:       domain.NodeTypeSkill,
			Label:      s,
			Properties: map[string]any{"demand": d, "supply": sup},
			Metrics:    &domain.NodeMetrics{Degree: degree[skillNodeID(s)]},
		})
		if severity, ok := gapSeverity(d, sup); ok {
			gaps = append(gaps, domain.SkillGap{Skill: s, Demand: d, Supply: sup, Severity: severity})
		}
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].Severity != gaps[j].Severity {
			return gaps[i].Severity > gaps[j].Severity
		}
		return gaps[i].Demand > gaps[j].Demand
	})

	return domain.SkillNetwork{Nodes: nodes, Edges: edges, Gaps: gaps, Clusters: skillClusters(src)}
}

// skillClusters groups the skills of active people by department. Experts are
// the members holding at least one skill and the proficiency is the mean of
// their recorded levels. People without a department form no cluster.
func skillClusters(src SkillSource) []domain.SkillCluster {
	type cluster struct {
		skills  map[string]bool
		experts map[string]string
		levels  []float64
	}

	departments := make(map[string]*cluster)
	for _, p := range src.People {
		if p.Department != "" && departments[p.Department] == nil {
			departments[p.Department] = &cluster{skills: map[string]bool{}, experts: map[string]string{}}
		}
	}
	members := make(map[string]string, len(src.People))
	names := make(map[string]string, len(src.People))
	for _, p := range src.People {
		members[p.ID] = p.Department
		names[p.ID] = p.Name
	}

	seen := make(map[string]bool)
	for _, us := range src.UserSkills {
		department, ok := members[us.UserID]
		if !ok || department == "" {
			continue
		}
		key := us.UserID + "\x00" + us.Skill
		if seen[key] {
			continue
		}
		seen[key] = true
		c := departments[department]
		c.skills[us.Skill] = true
		c.experts[us.UserID] = names[us.UserID]
		c.levels = append(c.levels, float64(us.Level))
	}

	clusters := make([]domain.SkillCluster, 0, len(departments))
	for _, name := range slices.Sorted(maps.Keys(departments)) {
		c := departments[name]
		if len(c.skills) == 0 {
			continue
		}
		experts := slices.Collect(maps.Values(c.experts))
		sort.Strings(experts)
		clusters = append(clusters, domain.SkillCluster{
			Name:           name,
			Skills:         slices.Sorted(maps.Keys(c.skills)),
			Experts:        experts,
			AvgProficiency: numeric.Round1(numeric.Mean(c.levels)),
		})
	}
	return clusters
}

func gapSeverity(demand, supply int64) (domain.Severity, bool) {
	switch {
	case demand == 0:
		return domain.SeverityLow, false
	case supply == 0:
		return domain.SeverityHigh, true
	case float64(demand)/float64(supply) > gapRatio:
		return domain.SeverityMedium, true
	default:
		return domain.SeverityLow, false
	}
}
