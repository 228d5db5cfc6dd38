package graphsync

import (
	"context"
	"testing"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockJob struct {
	mock.Mock
}

func (m *mockJob) Sync(ctx context.Context, organizationID string) (domain.SyncLog, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.SyncLog), args.Error(1)
}

func (m *mockJob) Latest(ctx context.Context, organizationID string) (domain.SyncLog, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(domain.SyncLog), args.Error(1)
}

func TestRunner_SyncsUntilCancelled(t *testing.T) {
	job := &mockJob{}
	job.On("Sync", mock.Anything, "org-1").
		Return(domain.SyncLog{OrganizationID: "org-1", Status: domain.SyncStatusCompleted}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	runner := NewRunner("org-1", job, 10*time.Millisecond)
	go runner.Run(ctx)

	first := <-runner.Results()
	assert.Equal(t, domain.SyncStatusCompleted, first.Status)

	cancel()
	select {
	case <-runner.Done():
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
	job.AssertCalled(t, "Sync", mock.Anything, "org-1")
}

func TestController_StartCancel(t *testing.T) {
	job := &mockJob{}
	job.On("Sync", mock.Anything, mock.Anything).Return(domain.SyncLog{Status: domain.SyncStatusCompleted}, nil)

	ctrl := NewController(job, time.Hour)
	ctx := context.Background()

	require.NoError(t, ctrl.Init(ctx, []string{"org-2", "org-1"}))
	assert.Equal(t, []string{"org-1", "org-2"}, ctrl.Running())

	err := ctrl.Start(ctx, "org-1")
	assert.EqualError(t, err, "graph sync already running: org-1")

	require.NoError(t, ctrl.Cancel(ctx, "org-1"))
	assert.Equal(t, []string{"org-2"}, ctrl.Running())

	err = ctrl.Cancel(ctx, "org-1")
	assert.EqualError(t, err, "graph sync not running: org-1")

	ctrl.Close()
	assert.Empty(t, ctrl.Running())
}

func TestController_RunnerOutlivesStartContext(t *testing.T) {
	job := &mockJob{}
	job.On("Sync", mock.Anything, "org-1").Return(domain.SyncLog{Status: domain.SyncStatusCompleted}, nil)

	ctrl := NewController(job, time.Hour)
	reqCtx, cancel := context.WithCancel(context.Background())
	require.NoError(t, ctrl.Start(reqCtx, "org-1"))
	cancel()

	assert.Equal(t, []string{"org-1"}, ctrl.Running())
	ctrl.Close()
}

func TestController_Disabled(t *testing.T) {
	ctrl := NewController(&mockJob{}, 0)

	err := ctrl.Start(context.Background(), "org-1")

	assert.EqualError(t, err, "periodic graph sync is disabled")
	assert.Empty(t, ctrl.Running())
}
