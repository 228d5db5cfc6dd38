package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate"
	"github.com/de-tools/agency-atlas/pkg/store/postgres/aggregate/aggregatetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

func expectSnapshot(m *aggregatetest.Store, filter aggregate.Filter) {
	dayStart := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	dayEnd := time.Date(2024, 3, 15, 23, 59, 59, int(999*time.Millisecond), time.UTC)

	m.On("CountBriefsByStatus", mock.Anything, filter).Return(map[string]int64{
		"IN_PROGRESS": 4,
		"IN_REVIEW":   2,
		"PENDING":     1,
		"COMPLETED":   9,
	}, nil)
	m.On("SumHours", mock.Anything, filter, dayStart, dayEnd).
		Return(store.HoursTotals{Total: 7.25, Billable: 5.04}, nil)
	m.On("CountActiveUsers", mock.Anything, filter, now.Add(-7*24*time.Hour)).Return(int64(6), nil)
	m.On("CountOverdueBriefs", mock.Anything, filter, now).Return(int64(1), nil)
	m.On("ListUpcomingDeadlines", mock.Anything, filter, dayStart, now.AddDate(0, 0, 7), 10).Return([]store.DeadlineRow{
		{BriefID: "b1", Title: "Late", ClientName: "Acme", Status: "IN_PROGRESS", Deadline: now.Add(-2 * time.Hour)},
		{BriefID: "b2", Title: "Tonight", ClientName: "Acme", Status: "IN_REVIEW", Deadline: now.Add(9 * time.Hour)},
		{BriefID: "b3", Title: "Next week", ClientName: "Globex", Status: "PENDING", Deadline: now.Add(11 * time.Hour)},
	}, nil)
	m.On("ListRecentActivity", mock.Anything, filter, now.Add(-24*time.Hour), 20).Return([]store.ActivityRow{
		{BriefID: "b2", Title: "Tonight", ClientName: "Acme", Status: "IN_REVIEW", UpdatedAt: now.Add(-time.Hour)},
	}, nil)
}

func TestBuilder_Build(t *testing.T) {
	m := new(aggregatetest.Store)
	filter := aggregate.Filter{OrganizationID: "org-1"}
	expectSnapshot(m, filter)

	b := NewBuilder(m, clock.Fixed(now), DefaultSettings())
	snapshot, err := b.Build(context.Background(), domain.ReportScope{OrganizationID: "org-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(4), snapshot.BriefsInProgress)
	assert.Equal(t, int64(2), snapshot.BriefsInReview)
	assert.Equal(t, int64(1), snapshot.BriefsPending)
	assert.Equal(t, int64(1), snapshot.BriefsOverdue)
	assert.Equal(t, int64(6), snapshot.ActiveUsers)
	assert.Equal(t, 7.3, snapshot.HoursToday)
	assert.Equal(t, 5.0, snapshot.BillableHoursToday)
	assert.Equal(t, now, snapshot.GeneratedAt)

	require.Len(t, snapshot.UpcomingDeadlines, 3)
	assert.True(t, snapshot.UpcomingDeadlines[0].IsOverdue)
	assert.Equal(t, 0, snapshot.UpcomingDeadlines[0].DaysUntil)
	// 23:00 the same day is still today
	assert.False(t, snapshot.UpcomingDeadlines[1].IsOverdue)
	assert.Equal(t, 0, snapshot.UpcomingDeadlines[1].DaysUntil)
	// 01:00 tomorrow is one calendar day away although only 11h remain
	assert.Equal(t, 1, snapshot.UpcomingDeadlines[2].DaysUntil)

	require.Len(t, snapshot.RecentActivity, 1)
	assert.Equal(t, domain.BriefStatusInReview, snapshot.RecentActivity[0].Status)
	m.AssertExpectations(t)
}

func TestBuilder_Build_ClientScope(t *testing.T) {
	m := new(aggregatetest.Store)
	filter := aggregate.Filter{OrganizationID: "org-1", ClientID: "client-1"}
	expectSnapshot(m, filter)

	b := NewBuilder(m, clock.Fixed(now), DefaultSettings())
	_, err := b.Build(context.Background(), domain.ReportScope{OrganizationID: "org-1", ClientID: "client-1"})
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestBuilder_Build_SubQueryFailure(t *testing.T) {
	m := new(aggregatetest.Store)
	filter := aggregate.Filter{OrganizationID: "org-1"}
	failure := errors.New("connection reset")

	m.On("CountBriefsByStatus", mock.Anything, filter).Return(nil, failure)
	m.On("SumHours", mock.Anything, filter, mock.Anything, mock.Anything).Return(store.HoursTotals{}, nil).Maybe()
	m.On("CountActiveUsers", mock.Anything, filter, mock.Anything).Return(int64(0), nil).Maybe()
	m.On("CountOverdueBriefs", mock.Anything, filter, mock.Anything).Return(int64(0), nil).Maybe()
	m.On("ListUpcomingDeadlines", mock.Anything, filter, mock.Anything, mock.Anything, mock.Anything).
		Return([]store.DeadlineRow{}, nil).Maybe()
	m.On("ListRecentActivity", mock.Anything, filter, mock.Anything, mock.Anything).
		Return([]store.ActivityRow{}, nil).Maybe()

	b := NewBuilder(m, clock.Fixed(now), DefaultSettings())
	snapshot, err := b.Build(context.Background(), domain.ReportScope{OrganizationID: "org-1"})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, domain.RealTimeMetrics{}, snapshot)
}
