// Package analysis runs the multi-factor analysis: factor correlations,
// performance drivers, workflow bottlenecks and a capacity forecast.
package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/numeric"
	"github.com/de-tools/agency-atlas/pkg/services/period"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate"
	"golang.org/x/sync/errgroup"
)

const (
	FactorTurnaroundDays = "turnaround_days"
	FactorHoursLogged    = "hours_logged"
	FactorTeamSize       = "team_size"
	FactorSatisfaction   = "satisfaction"

	MetricOnTimeRate = "on_time_rate"
	MetricThroughput = "throughput"

	// history used for the forecast baseline
	trailingWeeks = 4
	onTimeTarget  = 80
)

type Settings struct {
	MinCorrelationSamples int
	HoursPerBrief         float64
	GrowthRate            float64
	ForecastWeeks         int
	BottleneckMinHours    float64
}

func DefaultSettings() Settings {
	return Settings{
		MinCorrelationSamples: 6,
		HoursPerBrief:         8,
		GrowthRate:            0.05,
		ForecastWeeks:         4,
		BottleneckMinHours:    24,
	}
}

type Engine interface {
	// Analyze requires a date range on the scope.
	Analyze(ctx context.Context, scope domain.ReportScope) (domain.MultiFactorAnalysis, error)
}

type defaultEngine struct {
	store    aggregate.Store
	period   period.Calculator
	clock    clock.Clock
	settings Settings
}

func NewEngine(store aggregate.Store, period period.Calculator, clk clock.Clock, settings Settings) Engine {
	return &defaultEngine{
		store:    store,
		period:   period,
		clock:    clk,
		settings: settings,
	}
}

func (e *defaultEngine) Analyze(ctx context.Context, scope domain.ReportScope) (domain.MultiFactorAnalysis, error) {
	if err := scope.RequireRange(); err != nil {
		return domain.MultiFactorAnalysis{}, err
	}
	now := e.clock.Now()

	var (
		correlations []domain.FactorCorrelation
		drivers      []domain.PerformanceDriver
		bottlenecks  []domain.Bottleneck
		forecast     []domain.CapacityForecastPoint
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		correlations, err = e.correlations(gCtx, scope)
		return err
	})
	g.Go(func() error {
		var err error
		drivers, err = e.drivers(gCtx, scope)
		return err
	})
	g.Go(func() error {
		var err error
		bottlenecks, err = e.bottlenecks(gCtx, scope, now)
		return err
	})
	g.Go(func() error {
		var err error
		forecast, err = e.forecast(gCtx, scope, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.MultiFactorAnalysis{}, fmt.Errorf("multi-factor analysis: %w", err)
	}

	return domain.MultiFactorAnalysis{
		Period:             *scope.DateRange,
		Correlations:       correlations,
		PerformanceDrivers: drivers,
		Bottlenecks:        bottlenecks,
		CapacityForecast:   forecast,
		GeneratedAt:        now,
	}, nil
}

func (e *defaultEngine) correlations(ctx context.Context, scope domain.ReportScope) ([]domain.FactorCorrelation, error) {
	r := scope.DateRange
	briefs, err := e.store.ListCompletedBriefs(ctx, aggregate.FilterFor(scope), r.Start, r.End)
	if err != nil {
		return nil, err
	}
	return Correlations(briefs, e.settings.MinCorrelationSamples), nil
}

// Correlations computes every factor pair over the completed briefs. Pairs
// involving satisfaction only use briefs that received a score. Pairs with
// fewer than minSamples observations are omitted.
func Correlations(briefs []store.CompletedBriefRow, minSamples int) []domain.FactorCorrelation {
	var turnaround, hours, team []float64
	var scoredTurnaround, scoredHours, scores []float64
	for _, b := range briefs {
		days := period.TurnaroundDays(b)
		turnaround = append(turnaround, days)
		hours = append(hours, b.HoursLogged)
		team = append(team, float64(b.TeamSize))
		if b.Feedback.Valid {
			scoredTurnaround = append(scoredTurnaround, days)
			scoredHours = append(scoredHours, b.HoursLogged)
			scores = append(scores, b.Feedback.Float64)
		}
	}

	pairs := []struct {
		factor1, factor2 string
		x, y             []float64
	}{
		{FactorTurnaroundDays, FactorHoursLogged, turnaround, hours},
		{FactorTurnaroundDays, FactorTeamSize, turnaround, team},
		{FactorHoursLogged, FactorSatisfaction, scoredHours, scores},
		{FactorTurnaroundDays, FactorSatisfaction, scoredTurnaround, scores},
	}

	correlations := make([]domain.FactorCorrelation, 0, len(pairs))
	for _, p := range pairs {
		n := len(p.x)
		if n < minSamples {
			continue
		}
		correlations = append(correlations, domain.FactorCorrelation{
			Factor1:      p.factor1,
			Factor2:      p.factor2,
			Correlation:  Pearson(p.x, p.y),
			SampleSize:   n,
			Significance: SignificanceFor(n),
		})
	}
	return correlations
}

func (e *defaultEngine) drivers(ctx context.Context, scope domain.ReportScope) ([]domain.PerformanceDriver, error) {
	comparison, err := e.period.Compare(ctx, scope)
	if err != nil {
		return nil, err
	}
	return PerformanceDrivers(comparison.CurrentPeriod, comparison.PreviousPeriod), nil
}

func PerformanceDrivers(current, previous domain.PeriodMetrics) []domain.PerformanceDriver {
	onTime := domain.PerformanceDriver{
		Metric:        MetricOnTimeRate,
		Current:       float64(current.OnTimeDeliveryRate),
		Previous:      float64(previous.OnTimeDeliveryRate),
		ChangePercent: numeric.ChangePercent(float64(current.OnTimeDeliveryRate), float64(previous.OnTimeDeliveryRate)),
		Trend:         TrendFor(float64(current.OnTimeDeliveryRate), float64(previous.OnTimeDeliveryRate)),
	}
	if current.OnTimeDeliveryRate < onTimeTarget {
		onTime.Recommendation = fmt.Sprintf(
			"On-time delivery is %d%%, below the %d%% target: review deadline estimates and workload for late briefs",
			current.OnTimeDeliveryRate, onTimeTarget)
	}

	throughput := domain.PerformanceDriver{
		Metric:        MetricThroughput,
		Current:       float64(current.BriefsCompleted),
		Previous:      float64(previous.BriefsCompleted),
		ChangePercent: numeric.ChangePercent(float64(current.BriefsCompleted), float64(previous.BriefsCompleted)),
		Trend:         TrendFor(float64(current.BriefsCompleted), float64(previous.BriefsCompleted)),
	}
	return []domain.PerformanceDriver{onTime, throughput}
}

func (e *defaultEngine) bottlenecks(
	ctx context.Context,
	scope domain.ReportScope,
	now time.Time,
) ([]domain.Bottleneck, error) {
	open, err := e.store.ListOpenBriefs(ctx, aggregate.FilterFor(scope))
	if err != nil {
		return nil, err
	}
	return Bottlenecks(open, now, e.settings.BottleneckMinHours), nil
}

// Bottlenecks reports open statuses whose mean time since last update
// exceeds minHours, longest wait first.
func Bottlenecks(open []store.OpenBriefRow, now time.Time, minHours float64) []domain.Bottleneck {
	type stage struct {
		waitHours float64
		briefs    int
		clients   map[string]struct{}
	}
	stages := map[string]*stage{}
	for _, b := range open {
		if domain.BriefStatus(b.Status).IsTerminal() {
			continue
		}
		s, ok := stages[b.Status]
		if !ok {
			s = &stage{clients: map[string]struct{}{}}
			stages[b.Status] = s
		}
		s.waitHours += now.Sub(b.UpdatedAt).Hours()
		s.briefs++
		s.clients[b.ClientName] = struct{}{}
	}

	bottlenecks := make([]domain.Bottleneck, 0)
	for status, s := range stages {
		avg := s.waitHours / float64(s.briefs)
		if avg <= minHours {
			continue
		}
		clients := make([]string, 0, len(s.clients))
		for c := range s.clients {
			clients = append(clients, c)
		}
		sort.Strings(clients)
		bottlenecks = append(bottlenecks, domain.Bottleneck{
			Status:          domain.BriefStatus(status),
			AvgWaitHours:    numeric.Round1(avg),
			BriefCount:      s.briefs,
			AffectedClients: clients,
		})
	}
	sort.Slice(bottlenecks, func(i, j int) bool {
		if bottlenecks[i].AvgWaitHours != bottlenecks[j].AvgWaitHours {
			return bottlenecks[i].AvgWaitHours > bottlenecks[j].AvgWaitHours
		}
		return bottlenecks[i].Status < bottlenecks[j].Status
	})
	return bottlenecks
}

func (e *defaultEngine) forecast(
	ctx context.Context,
	scope domain.ReportScope,
	now time.Time,
) ([]domain.CapacityForecastPoint, error) {
	weekStart := clock.StartOfWeek(now)
	historyStart := weekStart.AddDate(0, 0, -7*trailingWeeks)
	filter := aggregate.FilterFor(scope)

	var (
		weekly []store.WeeklyCount
		people []store.PersonRow
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		weekly, err = e.store.WeeklyCreationCounts(gCtx, filter, historyStart, weekStart.Add(-domain.Instant))
		return err
	})
	g.Go(func() error {
		var err error
		people, err = e.store.ListPeople(gCtx, scope.OrganizationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var created int64
	for _, w := range weekly {
		created += w.Count
	}
	// weeks without briefs are absent from the rows but still count as weeks
	average := float64(created) / trailingWeeks

	var capacityHours float64
	for _, p := range people {
		if p.Active {
			capacityHours += p.WeeklyCapacityHours
		}
	}
	capacity := 0.0
	if e.settings.HoursPerBrief > 0 {
		capacity = capacityHours / e.settings.HoursPerBrief
	}

	return CapacityForecast(weekStart, average, capacity, e.settings.GrowthRate, e.settings.ForecastWeeks), nil
}

// CapacityForecast projects average weekly demand forward with compounding
// growth. Utilization is a whole percentage capped at 150 for display; risk
// bands the unrounded, uncapped value.
func CapacityForecast(
	weekStart time.Time,
	average, capacity, growth float64,
	weeks int,
) []domain.CapacityForecastPoint {
	points := make([]domain.CapacityForecastPoint, 0, weeks)
	for i := 1; i <= weeks; i++ {
		projected := average * math.Pow(1+growth, float64(i))

		var utilization float64
		switch {
		case capacity > 0:
			utilization = projected / capacity * 100
		case projected > 0:
			utilization = math.Inf(1)
		}

		start := weekStart.AddDate(0, 0, 7*(i-1))
		points = append(points, domain.CapacityForecastPoint{
			Week:                start.Format("2006-01-02"),
			WeekStart:           start,
			ProjectedBriefs:     numeric.Round1(projected),
			AvailableCapacity:   numeric.Round1(capacity),
			UtilizationForecast: math.Round(math.Min(utilization, 150)),
			Risk:                RiskFor(utilization),
		})
	}
	return points
}
