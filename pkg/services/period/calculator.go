// Package period computes metrics bundles for a date range and compares them
// against the equal-length range immediately before it.
package period

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/numeric"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate"
	"golang.org/x/sync/errgroup"
)

type Calculator interface {
	// Compare requires a scope with a date range.
	Compare(ctx context.Context, scope domain.ReportScope) (domain.PeriodComparison, error)
	Metrics(ctx context.Context, scope domain.ReportScope) (domain.PeriodMetrics, error)
}

type defaultCalculator struct {
	store aggregate.Store
}

func NewCalculator(store aggregate.Store) Calculator {
	return &defaultCalculator{store: store}
}

// PreviousRange returns the range of identical duration that ends one instant
// before r starts.
func PreviousRange(r domain.DateRange) domain.DateRange {
	d := r.Duration()
	return domain.DateRange{
		Start: r.Start.Add(-d),
		End:   r.Start.Add(-domain.Instant),
	}
}

func (c *defaultCalculator) Compare(ctx context.Context, scope domain.ReportScope) (domain.PeriodComparison, error) {
	if err := scope.RequireRange(); err != nil {
		return domain.PeriodComparison{}, err
	}
	filter := aggregate.FilterFor(scope)
	currentRange := *scope.DateRange
	previousRange := PreviousRange(currentRange)

	var current, previous domain.PeriodMetrics
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = c.metricsFor(gCtx, filter, currentRange)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = c.metricsFor(gCtx, filter, previousRange)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.PeriodComparison{}, err
	}

	return domain.PeriodComparison{
		CurrentPeriod:  current,
		PreviousPeriod: previous,
		Changes:        Diff(current, previous),
	}, nil
}

func (c *defaultCalculator) Metrics(ctx context.Context, scope domain.ReportScope) (domain.PeriodMetrics, error) {
	if err := scope.RequireRange(); err != nil {
		return domain.PeriodMetrics{}, err
	}
	return c.metricsFor(ctx, aggregate.FilterFor(scope), *scope.DateRange)
}

func (c *defaultCalculator) metricsFor(
	ctx context.Context,
	filter aggregate.Filter,
	r domain.DateRange,
) (domain.PeriodMetrics, error) {
	var (
		created      int64
		completed    []store.CompletedBriefRow
		hours        store.HoursTotals
		satisfaction store.Average
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		created, err = c.store.CountBriefsCreated(gCtx, filter, r.Start, r.End)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = c.store.ListCompletedBriefs(gCtx, filter, r.Start, r.End)
		return err
	})
	g.Go(func() error {
		var err error
		hours, err = c.store.SumHours(gCtx, filter, r.Start, r.End)
		return err
	})
	g.Go(func() error {
		var err error
		satisfaction, err = c.store.AverageSatisfaction(gCtx, filter, r.Start, r.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.PeriodMetrics{}, fmt.Errorf("period metrics for %s: %w", r.Label(), err)
	}

	return domain.PeriodMetrics{
		Period:                r.Label(),
		Range:                 r,
		BriefsCreated:         created,
		BriefsCompleted:       int64(len(completed)),
		AvgTurnaroundDays:     numeric.Round1(AverageTurnaroundDays(completed)),
		OnTimeDeliveryRate:    OnTimeRate(completed),
		TotalHours:            numeric.Round1(hours.Total),
		BillableHours:         numeric.Round1(hours.Billable),
		ClientSatisfactionAvg: numeric.Round1(satisfaction.Value),
		// revisions are not recorded by the operational store
		RevisionRate: domain.NotAvailable(),
	}, nil
}

func TurnaroundDays(b store.CompletedBriefRow) float64 {
	return b.CompletedAt.Sub(b.CreatedAt).Hours() / 24
}

// AverageTurnaroundDays is 0 when nothing was completed.
func AverageTurnaroundDays(briefs []store.CompletedBriefRow) float64 {
	days := make([]float64, 0, len(briefs))
	for _, b := range briefs {
		days = append(days, TurnaroundDays(b))
	}
	return numeric.Mean(days)
}

// OnTimeRate is the percentage of deadline-bearing briefs completed at or
// before their deadline. With no deadlines at all the rate is 100.
func OnTimeRate(briefs []store.CompletedBriefRow) int {
	var withDeadline, onTime int
	for _, b := range briefs {
		if !b.Deadline.Valid {
			continue
		}
		withDeadline++
		if !b.CompletedAt.After(b.Deadline.Time) {
			onTime++
		}
	}
	if withDeadline == 0 {
		return 100
	}
	return numeric.Percent(float64(onTime), float64(withDeadline))
}

// Diff is current - previous for every numeric field.
func Diff(current, previous domain.PeriodMetrics) domain.PeriodChanges {
	return domain.PeriodChanges{
		BriefsCreated:         current.BriefsCreated - previous.BriefsCreated,
		BriefsCompleted:       current.BriefsCompleted - previous.BriefsCompleted,
		AvgTurnaroundDays:     numeric.Round1(current.AvgTurnaroundDays - previous.AvgTurnaroundDays),
		OnTimeDeliveryRate:    current.OnTimeDeliveryRate - previous.OnTimeDeliveryRate,
		TotalHours:            numeric.Round1(current.TotalHours - previous.TotalHours),
		BillableHours:         numeric.Round1(current.BillableHours - previous.BillableHours),
		ClientSatisfactionAvg: numeric.Round1(current.ClientSatisfactionAvg - previous.ClientSatisfactionAvg),
		RevisionRate:          current.RevisionRate.Sub(previous.RevisionRate),
	}
}

// Window returns the trailing range of d ending at now.
func Window(now time.Time, d time.Duration) domain.DateRange {
	return domain.DateRange{Start: now.Add(-d), End: now}
}
