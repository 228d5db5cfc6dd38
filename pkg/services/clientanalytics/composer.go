// Package clientanalytics composes the per-client analytics report.
package clientanalytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/numeric"
	"github.com/de-tools/agency-atlas/pkg/services/period"
	"github.com/de-tools/agency-atlas/pkg/services/realtime"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate"
	"golang.org/x/sync/errgroup"
)

type Composer interface {
	// Compose requires a client and a date range on the scope.
	Compose(ctx context.Context, scope domain.ReportScope) (domain.ClientAnalytics, error)
}

type defaultComposer struct {
	store       aggregate.Store
	realtime    realtime.Builder
	period      period.Calculator
	clock       clock.Clock
	trendMonths int
}

func NewComposer(
	store aggregate.Store,
	realtime realtime.Builder,
	period period.Calculator,
	clk clock.Clock,
	trendMonths int,
) Composer {
	if trendMonths <= 0 {
		trendMonths = 6
	}
	return &defaultComposer{
		store:       store,
		realtime:    realtime,
		period:      period,
		clock:       clk,
		trendMonths: trendMonths,
	}
}

func (c *defaultComposer) Compose(ctx context.Context, scope domain.ReportScope) (domain.ClientAnalytics, error) {
	if err := scope.RequireClient(); err != nil {
		return domain.ClientAnalytics{}, err
	}

	client, err := c.store.GetClient(ctx, scope.OrganizationID, scope.ClientID)
	if err != nil {
		return domain.ClientAnalytics{}, err
	}

	now := c.clock.Now()
	filter := aggregate.FilterFor(scope)
	r := *scope.DateRange
	trendStart := clock.StartOfMonth(now).AddDate(0, -(c.trendMonths - 1), 0)

	var (
		snapshot   domain.RealTimeMetrics
		comparison domain.PeriodComparison
		types      []store.TypeCount
		trend      []store.MonthlyRow
		hours      []store.UserHours
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot, err = c.realtime.Build(gCtx, scope.WithoutRange())
		return err
	})
	g.Go(func() error {
		var err error
		comparison, err = c.period.Compare(gCtx, scope)
		return err
	})
	g.Go(func() error {
		var err error
		types, err = c.store.CountBriefsByType(gCtx, filter, r.Start, r.End)
		return err
	})
	g.Go(func() error {
		var err error
		trend, err = c.store.MonthlyTrend(gCtx, filter, trendStart, now)
		return err
	})
	g.Go(func() error {
		var err error
		hours, err = c.store.HoursByUser(gCtx, filter, r.Start, r.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ClientAnalytics{}, fmt.Errorf("compose client analytics for %s: %w", scope.ClientID, err)
	}

	allocation, total := TeamAllocation(hours)
	return domain.ClientAnalytics{
		Client: domain.Client{
			ID:       client.ID,
			Name:     client.Name,
			Industry: client.Industry,
		},
		RealTime:       snapshot,
		Comparison:     comparison,
		BriefTypes:     BriefTypeBreakdown(types),
		Trend:          MonthlyTrend(trendStart, c.trendMonths, trend),
		TeamAllocation: allocation,
		TotalTeamHours: numeric.Round1(total),
	}, nil
}

// BriefTypeBreakdown rounds each share independently, so the percentages may
// not add up to exactly 100.
func BriefTypeBreakdown(counts []store.TypeCount) []domain.BriefTypeShare {
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	shares := make([]domain.BriefTypeShare, 0, len(counts))
	for _, c := range counts {
		shares = append(shares, domain.BriefTypeShare{
			Type:       c.BriefType,
			Count:      c.Count,
			Percentage: numeric.Percent(float64(c.Count), float64(total)),
		})
	}
	return shares
}

// MonthlyTrend lays rows onto months consecutive calendar months starting at
// start, oldest first. Months without a row are zero.
func MonthlyTrend(start time.Time, months int, rows []store.MonthlyRow) []domain.MonthlyTrendPoint {
	type monthKey struct {
		year  int
		month time.Month
	}
	byMonth := make(map[monthKey]store.MonthlyRow, len(rows))
	for _, r := range rows {
		m := r.Month.In(start.Location())
		byMonth[monthKey{m.Year(), m.Month()}] = r
	}

	points := make([]domain.MonthlyTrendPoint, 0, months)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		row := byMonth[monthKey{m.Year(), m.Month()}]
		points = append(points, domain.MonthlyTrendPoint{
			Month:           m,
			Label:           m.Format("Jan 2006"),
			BriefsCreated:   row.Created,
			BriefsCompleted: row.Completed,
			Hours:           numeric.Round1(row.Hours),
		})
	}
	return points
}

// TeamAllocation returns every person with logged hours, largest share first,
// along with the total the shares are taken from.
func TeamAllocation(rows []store.UserHours) ([]domain.TeamAllocation, float64) {
	var total float64
	for _, r := range rows {
		total += r.Hours
	}
	allocation := make([]domain.TeamAllocation, 0, len(rows))
	for _, r := range rows {
		if r.Hours <= 0 {
			continue
		}
		allocation = append(allocation, domain.TeamAllocation{
			UserID:            r.UserID,
			Name:              r.Name,
			Hours:             numeric.Round1(r.Hours),
			PercentageOfTotal: numeric.Percent(r.Hours, total),
		})
	}
	sort.SliceStable(allocation, func(i, j int) bool {
		return allocation[i].Hours > allocation[j].Hours
	})
	return allocation, total
}
