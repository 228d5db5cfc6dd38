package adapters

import (
	"github.com/de-tools/agency-atlas/pkg/models/api"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityLow:
		return api.SeverityLow
	case domain.SeverityMedium:
		return api.SeverityMedium
	case domain.SeverityHigh:
		return api.SeverityHigh
	default:
		return api.SeverityLow
	}
}

// MapMetricDomainToApi returns nil for metrics that could not be measured.
func MapMetricDomainToApi(m domain.Metric) *float64 {
	if !m.Available {
		return nil
	}
	v := m.Value
	return &v
}

func MapDateRangeDomainToApi(r domain.DateRange) api.DateRange {
	return api.DateRange{Start: r.Start, End: r.End}
}

func MapRealTimeMetricsDomainToApi(m domain.RealTimeMetrics) api.RealTimeMetrics {
	res := api.RealTimeMetrics{
		BriefsInProgress:   m.BriefsInProgress,
		BriefsInReview:     m.BriefsInReview,
		BriefsPending:      m.BriefsPending,
		BriefsOverdue:      m.BriefsOverdue,
		ActiveUsers:        m.ActiveUsers,
		HoursToday:         m.HoursToday,
		BillableHoursToday: m.BillableHoursToday,
		UpcomingDeadlines:  make([]api.UpcomingDeadline, 0, len(m.UpcomingDeadlines)),
		RecentActivity:     make([]api.ActivityItem, 0, len(m.RecentActivity)),
		GeneratedAt:        m.GeneratedAt,
	}
	for _, d := range m.UpcomingDeadlines {
		res.UpcomingDeadlines = append(res.UpcomingDeadlines, api.UpcomingDeadline{
			BriefID:    d.BriefID,
			Title:      d.Title,
			ClientName: d.ClientName,
			Status:     string(d.Status),
			Deadline:   d.Deadline,
			DaysUntil:  d.DaysUntil,
			IsOverdue:  d.IsOverdue,
		})
	}
	for _, a := range m.RecentActivity {
		res.RecentActivity = append(res.RecentActivity, api.ActivityItem{
			BriefID:    a.BriefID,
			Title:      a.Title,
			ClientName: a.ClientName,
			Status:     string(a.Status),
			UpdatedAt:  a.UpdatedAt,
		})
	}
	return res
}

func MapPeriodMetricsDomainToApi(m domain.PeriodMetrics) api.PeriodMetrics {
	return api.PeriodMetrics{
		Period:                m.Period,
		Range:                 MapDateRangeDomainToApi(m.Range),
		BriefsCreated:         m.BriefsCreated,
		BriefsCompleted:       m.BriefsCompleted,
		AvgTurnaroundDays:     m.AvgTurnaroundDays,
		OnTimeDeliveryRate:    m.OnTimeDeliveryRate,
		TotalHours:            m.TotalHours,
		BillableHours:         m.BillableHours,
		ClientSatisfactionAvg: m.ClientSatisfactionAvg,
		RevisionRate:          MapMetricDomainToApi(m.RevisionRate),
	}
}

func MapPeriodComparisonDomainToApi(c domain.PeriodComparison) api.PeriodComparison {
	return api.PeriodComparison{
		CurrentPeriod:  MapPeriodMetricsDomainToApi(c.CurrentPeriod),
		PreviousPeriod: MapPeriodMetricsDomainToApi(c.PreviousPeriod),
		Changes: api.PeriodChanges{
			BriefsCreated:         c.Changes.BriefsCreated,
			BriefsCompleted:       c.Changes.BriefsCompleted,
			AvgTurnaroundDays:     c.Changes.AvgTurnaroundDays,
			OnTimeDeliveryRate:    c.Changes.OnTimeDeliveryRate,
			TotalHours:            c.Changes.TotalHours,
			BillableHours:         c.Changes.BillableHours,
			ClientSatisfactionAvg: c.Changes.ClientSatisfactionAvg,
			RevisionRate:          MapMetricDomainToApi(c.Changes.RevisionRate),
		},
	}
}

func MapClientDomainToApi(c domain.Client) api.Client {
	return api.Client{ID: c.ID, Name: c.Name, Industry: c.Industry}
}

func MapClientAnalyticsDomainToApi(a domain.ClientAnalytics) api.ClientAnalytics {
	res := api.ClientAnalytics{
		Client:         MapClientDomainToApi(a.Client),
		RealTime:       MapRealTimeMetricsDomainToApi(a.RealTime),
		Comparison:     MapPeriodComparisonDomainToApi(a.Comparison),
		BriefTypes:     make([]api.BriefTypeShare, 0, len(a.BriefTypes)),
		Trend:          make([]api.MonthlyTrendPoint, 0, len(a.Trend)),
		TeamAllocation: make([]api.TeamAllocation, 0, len(a.TeamAllocation)),
		TotalTeamHours: a.TotalTeamHours,
	}
	for _, bt := range a.BriefTypes {
		res.BriefTypes = append(res.BriefTypes, api.BriefTypeShare(bt))
	}
	for _, p := range a.Trend {
		res.Trend = append(res.Trend, api.MonthlyTrendPoint{
			Month:           p.Label,
			BriefsCreated:   p.BriefsCreated,
			BriefsCompleted: p.BriefsCompleted,
			Hours:           p.Hours,
		})
	}
	for _, t := range a.TeamAllocation {
		res.TeamAllocation = append(res.TeamAllocation, api.TeamAllocation(t))
	}
	return res
}

func MapMultiFactorAnalysisDomainToApi(a domain.MultiFactorAnalysis) api.MultiFactorAnalysis {
	res := api.MultiFactorAnalysis{
		Period:             MapDateRangeDomainToApi(a.Period),
		Correlations:       make([]api.FactorCorrelation, 0, len(a.Correlations)),
		PerformanceDrivers: make([]api.PerformanceDriver, 0, len(a.PerformanceDrivers)),
		Bottlenecks:        make([]api.Bottleneck, 0, len(a.Bottlenecks)),
		CapacityForecast:   make([]api.CapacityForecastPoint, 0, len(a.CapacityForecast)),
		GeneratedAt:        a.GeneratedAt,
	}
	for _, c := range a.Correlations {
		res.Correlations = append(res.Correlations, api.FactorCorrelation{
			Factor1:      c.Factor1,
			Factor2:      c.Factor2,
			Correlation:  c.Correlation,
			SampleSize:   c.SampleSize,
			Significance: string(c.Significance),
		})
	}
	for _, d := range a.PerformanceDrivers {
		res.PerformanceDrivers = append(res.PerformanceDrivers, api.PerformanceDriver{
			Metric:         d.Metric,
			Current:        d.Current,
			Previous:       d.Previous,
			ChangePercent:  d.ChangePercent,
			Trend:          string(d.Trend),
			Recommendation: d.Recommendation,
		})
	}
	for _, b := range a.Bottlenecks {
		clients := b.AffectedClients
		if clients == nil {
			clients = []string{}
		}
		res.Bottlenecks = append(res.Bottlenecks, api.Bottleneck{
			Status:          string(b.Status),
			AvgWaitHours:    b.AvgWaitHours,
			BriefCount:      b.BriefCount,
			AffectedClients: clients,
		})
	}
	for _, p := range a.CapacityForecast {
		res.CapacityForecast = append(res.CapacityForecast, api.CapacityForecastPoint{
			Week:                p.Week,
			ProjectedBriefs:     p.ProjectedBriefs,
			AvailableCapacity:   p.AvailableCapacity,
			UtilizationForecast: p.UtilizationForecast,
			Risk:                MapSeverityDomainToApi(p.Risk),
		})
	}
	return res
}
