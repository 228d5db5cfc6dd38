// Package realtime builds "right now" operational snapshots.
package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/numeric"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	activeUserWindow     = 7 * 24 * time.Hour
	recentActivityWindow = 24 * time.Hour
)

type Settings struct {
	UpcomingDeadlineDays  int
	UpcomingDeadlineLimit int
	RecentActivityLimit   int
}

func DefaultSettings() Settings {
	return Settings{
		UpcomingDeadlineDays:  7,
		UpcomingDeadlineLimit: 10,
		RecentActivityLimit:   20,
	}
}

type Builder interface {
	// Build ignores any date range on the scope.
	Build(ctx context.Context, scope domain.ReportScope) (domain.RealTimeMetrics, error)
}

type defaultBuilder struct {
	store    aggregate.Store
	clock    clock.Clock
	settings Settings
}

func NewBuilder(store aggregate.Store, clk clock.Clock, settings Settings) Builder {
	return &defaultBuilder{
		store:    store,
		clock:    clk,
		settings: settings,
	}
}

func (b *defaultBuilder) Build(ctx context.Context, scope domain.ReportScope) (domain.RealTimeMetrics, error) {
	now := b.clock.Now()
	filter := aggregate.FilterFor(scope)
	dayStart := clock.StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-domain.Instant)

	var (
		statusCounts map[string]int64
		hoursToday   store.HoursTotals
		activeUsers  int64
		overdue      int64
		deadlines    []store.DeadlineRow
		activity     []store.ActivityRow
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		statusCounts, err = b.store.CountBriefsByStatus(gCtx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		hoursToday, err = b.store.SumHours(gCtx, filter, dayStart, dayEnd)
		return err
	})
	g.Go(func() error {
		var err error
		activeUsers, err = b.store.CountActiveUsers(gCtx, filter, now.Add(-activeUserWindow))
		return err
	})
	g.Go(func() error {
		var err error
		overdue, err = b.store.CountOverdueBriefs(gCtx, filter, now)
		return err
	})
	g.Go(func() error {
		var err error
		until := now.AddDate(0, 0, b.settings.UpcomingDeadlineDays)
		deadlines, err = b.store.ListUpcomingDeadlines(gCtx, filter, dayStart, until, b.settings.UpcomingDeadlineLimit)
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = b.store.ListRecentActivity(gCtx, filter, now.Add(-recentActivityWindow), b.settings.RecentActivityLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("organization_id", scope.OrganizationID).
			Str("client_id", scope.ClientID).
			Msg("real-time snapshot failed")
		return domain.RealTimeMetrics{}, fmt.Errorf("build real-time snapshot: %w", err)
	}

	return domain.RealTimeMetrics{
		BriefsInProgress:   statusCounts[string(domain.BriefStatusInProgress)],
		BriefsInReview:     statusCounts[string(domain.BriefStatusInReview)],
		BriefsPending:      statusCounts[string(domain.BriefStatusPending)],
		BriefsOverdue:      overdue,
		ActiveUsers:        activeUsers,
		HoursToday:         numeric.Round1(hoursToday.Total),
		BillableHoursToday: numeric.Round1(hoursToday.Billable),
		UpcomingDeadlines:  upcomingDeadlines(now, deadlines),
		RecentActivity:     recentActivity(activity),
		GeneratedAt:        now,
	}, nil
}

func upcomingDeadlines(now time.Time, rows []store.DeadlineRow) []domain.UpcomingDeadline {
	deadlines := make([]domain.UpcomingDeadline, 0, len(rows))
	for _, r := range rows {
		deadlines = append(deadlines, domain.UpcomingDeadline{
			BriefID:    r.BriefID,
			Title:      r.Title,
			ClientName: r.ClientName,
			Status:     domain.BriefStatus(r.Status),
			Deadline:   r.Deadline,
			DaysUntil:  clock.DaysBetween(now, r.Deadline),
			IsOverdue:  r.Deadline.Before(now),
		})
	}
	return deadlines
}

func recentActivity(rows []store.ActivityRow) []domain.ActivityItem {
	items := make([]domain.ActivityItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.ActivityItem{
			BriefID:    r.BriefID,
			Title:      r.Title,
			ClientName: r.ClientName,
			Status:     domain.BriefStatus(r.Status),
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return items
}
