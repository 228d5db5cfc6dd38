package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/api"
)

const dateLayout = "2006-01-02"

func f2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func optional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return f2(*v)
}

func signed(v float64) string {
	if v > 0 {
		return "+" + f2(v)
	}
	return f2(v)
}

func rangeLabel(r api.DateRange) string {
	return fmt.Sprintf("%s to %s", r.Start.Format(dateLayout), r.End.Format(dateLayout))
}

func RealTimeView(m api.RealTimeMetrics) Report {
	deadlines := make([][]string, 0, len(m.UpcomingDeadlines))
	for _, d := range m.UpcomingDeadlines {
		due := fmt.Sprintf("in %d days", d.DaysUntil)
		if d.IsOverdue {
			due = "overdue"
		}
		deadlines = append(deadlines, []string{d.Title, d.ClientName, d.Status, d.Deadline.Format(dateLayout), due})
	}
	activity := make([][]string, 0, len(m.RecentActivity))
	for _, a := range m.RecentActivity {
		activity = append(activity, []string{a.Title, a.ClientName, a.Status, a.UpdatedAt.Format(time.RFC3339)})
	}

	return Report{
		Title:    "Real-time metrics",
		Subtitle: "Generated at " + m.GeneratedAt.Format(time.RFC3339),
		Sections: []Section{
			{
				Title: "Workload",
				Summary: []Field{
					{"Briefs in progress", strconv.FormatInt(m.BriefsInProgress, 10)},
					{"Briefs in review", strconv.FormatInt(m.BriefsInReview, 10)},
					{"Briefs pending", strconv.FormatInt(m.BriefsPending, 10)},
					{"Briefs overdue", strconv.FormatInt(m.BriefsOverdue, 10)},
					{"Active users", strconv.FormatInt(m.ActiveUsers, 10)},
					{"Hours today", f2(m.HoursToday)},
					{"Billable hours today", f2(m.BillableHoursToday)},
				},
			},
			{
				Title:   "Upcoming deadlines",
				Columns: []string{"Brief", "Client", "Status", "Deadline", "Due"},
				Rows:    deadlines,
			},
			{
				Title:   "Recent activity",
				Columns: []string{"Brief", "Client", "Status", "Updated"},
				Rows:    activity,
			},
		},
	}
}

func periodRows(c api.PeriodComparison) [][]string {
	cur, prev, ch := c.CurrentPeriod, c.PreviousPeriod, c.Changes
	return [][]string{
		{"Briefs created", strconv.FormatInt(cur.BriefsCreated, 10), strconv.FormatInt(prev.BriefsCreated, 10), fmt.Sprintf("%+d%%", ch.BriefsCreated)},
		{"Briefs completed", strconv.FormatInt(cur.BriefsCompleted, 10), strconv.FormatInt(prev.BriefsCompleted, 10), fmt.Sprintf("%+d%%", ch.BriefsCompleted)},
		{"Avg turnaround (days)", f2(cur.AvgTurnaroundDays), f2(prev.AvgTurnaroundDays), signed(ch.AvgTurnaroundDays)},
		{"On-time delivery (%)", strconv.Itoa(cur.OnTimeDeliveryRate), strconv.Itoa(prev.OnTimeDeliveryRate), fmt.Sprintf("%+d", ch.OnTimeDeliveryRate)},
		{"Total hours", f2(cur.TotalHours), f2(prev.TotalHours), signed(ch.TotalHours)},
		{"Billable hours", f2(cur.BillableHours), f2(prev.BillableHours), signed(ch.BillableHours)},
		{"Client satisfaction", f2(cur.ClientSatisfactionAvg), f2(prev.ClientSatisfactionAvg), signed(ch.ClientSatisfactionAvg)},
		{"Revision rate", optional(cur.RevisionRate), optional(prev.RevisionRate), optional(ch.RevisionRate)},
	}
}

func PeriodView(c api.PeriodComparison) Report {
	return Report{
		Title:    "Period comparison",
		Subtitle: fmt.Sprintf("Current %s, previous %s", rangeLabel(c.CurrentPeriod.Range), rangeLabel(c.PreviousPeriod.Range)),
		Sections: []Section{{
			Title:   "Metrics",
			Columns: []string{"Metric", "Current", "Previous", "Change"},
			Rows:    periodRows(c),
		}},
	}
}

func ClientView(a api.ClientAnalytics) Report {
	types := make([][]string, 0, len(a.BriefTypes))
	for _, t := range a.BriefTypes {
		types = append(types, []string{t.Type, strconv.FormatInt(t.Count, 10), strconv.Itoa(t.Percentage) + "%"})
	}
	trend := make([][]string, 0, len(a.Trend))
	for _, p := range a.Trend {
		trend = append(trend, []string{p.Month, strconv.FormatInt(p.BriefsCreated, 10), strconv.FormatInt(p.BriefsCompleted, 10), f2(p.Hours)})
	}
	team := make([][]string, 0, len(a.TeamAllocation))
	for _, m := range a.TeamAllocation {
		team = append(team, []string{m.Name, f2(m.Hours), strconv.Itoa(m.PercentageOfTotal) + "%"})
	}

	return Report{
		Title:    "Client analytics: " + a.Client.Name,
		Subtitle: a.Client.Industry,
		Sections: []Section{
			{
				Title: "Current workload",
				Summary: []Field{
					{"Briefs in progress", strconv.FormatInt(a.RealTime.BriefsInProgress, 10)},
					{"Briefs overdue", strconv.FormatInt(a.RealTime.BriefsOverdue, 10)},
					{"Total team hours", f2(a.TotalTeamHours)},
				},
			},
			{
				Title:   "Period comparison",
				Columns: []string{"Metric", "Current", "Previous", "Change"},
				Rows:    periodRows(a.Comparison),
			},
			{Title: "Brief types", Columns: []string{"Type", "Count", "Share"}, Rows: types},
			{Title: "Monthly trend", Columns: []string{"Month", "Created", "Completed", "Hours"}, Rows: trend},
			{Title: "Team allocation", Columns: []string{"Member", "Hours", "Share"}, Rows: team},
		},
	}
}

func AnalysisView(a api.MultiFactorAnalysis) Report {
	correlations := make([][]string, 0, len(a.Correlations))
	for _, c := range a.Correlations {
		correlations = append(correlations, []string{c.Factor1, c.Factor2, f2(c.Correlation), strconv.Itoa(c.SampleSize), c.Significance})
	}
	drivers := make([][]string, 0, len(a.PerformanceDrivers))
	for _, d := range a.PerformanceDrivers {
		drivers = append(drivers, []string{d.Metric, f2(d.Current), f2(d.Previous), signed(d.ChangePercent) + "%", d.Trend, d.Recommendation})
	}
	bottlenecks := make([][]string, 0, len(a.Bottlenecks))
	for _, b := range a.Bottlenecks {
		bottlenecks = append(bottlenecks, []string{b.Status, f2(b.AvgWaitHours), strconv.Itoa(b.BriefCount), strings.Join(b.AffectedClients, ", ")})
	}
	forecast := make([][]string, 0, len(a.CapacityForecast))
	for _, p := range a.CapacityForecast {
		forecast = append(forecast, []string{p.Week, f2(p.ProjectedBriefs), f2(p.AvailableCapacity), strconv.FormatFloat(p.UtilizationForecast, 'f', 0, 64) + "%", string(p.Risk)})
	}

	return Report{
		Title:    "Multi-factor analysis",
		Subtitle: rangeLabel(a.Period),
		Sections: []Section{
			{Title: "Correlations", Columns: []string{"Factor", "Factor", "r", "Samples", "Significance"}, Rows: correlations},
			{Title: "Performance drivers", Columns: []string{"Metric", "Current", "Previous", "Change", "Trend", "Recommendation"}, Rows: drivers},
			{Title: "Bottlenecks", Columns: []string{"Status", "Avg wait (h)", "Briefs", "Clients"}, Rows: bottlenecks},
			{Title: "Capacity forecast", Columns: []string{"Week", "Projected briefs", "Capacity", "Utilization", "Risk"}, Rows: forecast},
		},
	}
}

func nodeRows(nodes []api.GraphNode) [][]string {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		degree, pageRank, betweenness := "", "n/a", "n/a"
		if n.Metrics != nil {
			degree = strconv.Itoa(n.Metrics.Degree)
			pageRank = optional(n.Metrics.PageRank)
			betweenness = optional(n.Metrics.Betweenness)
		}
		rows = append(rows, []string{n.Label, n.Type, degree, pageRank, betweenness})
	}
	return rows
}

func CollaborationView(n api.CollaborationNetwork) Report {
	connectors := make([][]string, 0, len(n.KeyConnectors))
	for _, k := range n.KeyConnectors {
		connectors = append(connectors, []string{k.Label, strconv.Itoa(k.Degree), f2(k.InfluenceScore)})
	}
	labels := make(map[string]string, len(n.Nodes))
	for _, node := range n.Nodes {
		labels[node.ID] = node.Label
	}
	communities := make([][]string, 0, len(n.Communities))
	for _, c := range n.Communities {
		members := make([]string, 0, len(c.Members))
		for _, id := range c.Members {
			members = append(members, labels[id])
		}
		communities = append(communities, []string{strconv.Itoa(c.ID), strings.Join(members, ", ")})
	}

	sections := []Section{
		{
			Title: "Summary",
			Summary: []Field{
				{"People", strconv.Itoa(len(n.Nodes))},
				{"Collaborations", strconv.Itoa(len(n.Edges))},
				{"Isolated", strings.Join(n.IsolatedNodes, ", ")},
			},
		},
		{Title: "Key connectors", Columns: []string{"Person", "Degree", "Influence"}, Rows: connectors},
		{Title: "People", Columns: []string{"Person", "Type", "Degree", "PageRank", "Betweenness"}, Rows: nodeRows(n.Nodes)},
	}
	if n.CommunitiesDetected {
		sections = append(sections, Section{Title: "Communities", Columns: []string{"#", "Members"}, Rows: communities})
	}

	return Report{
		Title:    "Collaboration network",
		Subtitle: "Backend: " + n.Backend,
		Sections: sections,
	}
}

func ClientGraphView(g api.ClientRelationshipGraph) Report {
	risks := make([][]string, 0, len(g.RiskIndicators))
	for _, r := range g.RiskIndicators {
		risks = append(risks, []string{r.Type, string(r.Severity), r.Description})
	}
	labels := make(map[string]string, len(g.Nodes))
	for _, node := range g.Nodes {
		labels[node.ID] = node.Label
	}
	members := make([][]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		assigned := ""
		if v, ok := e.Properties["assignedBriefs"]; ok {
			assigned = fmt.Sprint(v)
		}
		members = append(members, []string{labels[e.Source], f2(e.Weight), assigned})
	}

	return Report{
		Title:    "Client relationships: " + g.Client.Name,
		Subtitle: "Backend: " + g.Backend,
		Sections: []Section{
			{
				Title: "Summary",
				Summary: []Field{
					{"Total hours", f2(g.TotalHours)},
					{"Total briefs", strconv.FormatInt(g.TotalBriefs, 10)},
					{"Primary contacts", strings.Join(g.PrimaryContacts, ", ")},
				},
			},
			{Title: "Team", Columns: []string{"Member", "Hours", "Assigned briefs"}, Rows: members},
			{Title: "Risks", Columns: []string{"Type", "Severity", "Description"}, Rows: risks},
		},
	}
}

func SkillsView(n api.SkillNetwork) Report {
	gaps := make([][]string, 0, len(n.Gaps))
	for _, g := range n.Gaps {
		gaps = append(gaps, []string{g.Skill, strconv.FormatInt(g.Demand, 10), strconv.FormatInt(g.Supply, 10), string(g.Severity)})
	}
	skills := 0
	for _, node := range n.Nodes {
		if node.Type == "skill" {
			skills++
		}
	}
	clusters := make([][]string, 0, len(n.Clusters))
	for _, c := range n.Clusters {
		clusters = append(clusters, []string{c.Name, strings.Join(c.Skills, ", "), strings.Join(c.Experts, ", "), f2(c.AvgProficiency)})
	}

	return Report{
		Title:    "Skill network",
		Subtitle: "Backend: " + n.Backend,
		Sections: []Section{
			{
				Title: "Summary",
				Summary: []Field{
					{"Skills", strconv.Itoa(skills)},
					{"People", strconv.Itoa(len(n.Nodes) - skills)},
					{"Skill links", strconv.Itoa(len(n.Edges))},
				},
			},
			{Title: "Skill gaps", Columns: []string{"Skill", "Demand", "Supply", "Severity"}, Rows: gaps},
			{Title: "Clusters", Columns: []string{"Department", "Skills", "Experts", "Avg proficiency"}, Rows: clusters},
		},
	}
}

func MultiPartyView(g api.MultiPartyGraph) Report {
	labels := make(map[string]string, len(g.Nodes))
	for _, node := range g.Nodes {
		labels[node.ID] = node.Label
	}
	links := make([][]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		links = append(links, []string{labels[e.Source], labels[e.Target], strconv.FormatFloat(e.Weight, 'f', -1, 64)})
	}

	return Report{
		Title:    "Multi-party graph",
		Subtitle: "Backend: " + g.Backend,
		Sections: []Section{
			{
				Title: "Summary",
				Summary: []Field{
					{"Nodes", strconv.Itoa(g.Summary.NodeCount)},
					{"Edges", strconv.Itoa(g.Summary.EdgeCount)},
					{"Density", strconv.FormatFloat(g.Summary.Density, 'f', 3, 64)},
					{"Clusters", strconv.Itoa(g.Summary.Clusters)},
				},
			},
			{Title: "Works for", Columns: []string{"Person", "Client", "Briefs"}, Rows: links},
		},
	}
}

func SyncView(l api.SyncLog) Report {
	summary := []Field{
		{"Status", l.Status},
		{"Nodes synced", strconv.Itoa(l.NodesSynced)},
		{"Edges synced", strconv.Itoa(l.EdgesSynced)},
		{"Started", l.StartedAt.Format(time.RFC3339)},
		{"Finished", l.FinishedAt.Format(time.RFC3339)},
	}
	if l.Error != nil {
		summary = append(summary, Field{"Error", *l.Error})
	}
	return Report{
		Title:    "Graph sync " + l.ID,
		Subtitle: "Organization " + l.OrganizationID,
		Sections: []Section{{Title: "Result", Summary: summary}},
	}
}
