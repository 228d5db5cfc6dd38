package graphsync

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type Controller interface {
	Start(ctx context.Context, organizationID string) error
	Cancel(ctx context.Context, organizationID string) error
	Running() []string
}

type runnerDescriptor struct {
	cancelFunc context.CancelFunc
	runner     *Runner
}

type DefaultController struct {
	job      Job
	interval time.Duration

	mu      sync.Mutex
	runners map[string]runnerDescriptor
}

func NewController(job Job, interval time.Duration) *DefaultController {
	return &DefaultController{
		job:      job,
		interval: interval,
		runners:  make(map[string]runnerDescriptor),
	}
}

// Init starts periodic syncs for the given organizations.
func (ctrl *DefaultController) Init(ctx context.Context, organizationIDs []string) error {
	for _, org := range organizationIDs {
		if err := ctrl.Start(ctx, org); err != nil {
			return err
		}
	}
	return nil
}

// Start launches a runner for the organization. The runner keeps the values
// of ctx (logger) but not its cancellation, so it outlives the caller until
// Cancel or Close.
func (ctrl *DefaultController) Start(ctx context.Context, organizationID string) error {
	if ctrl.interval <= 0 {
		return fmt.Errorf("periodic graph sync is disabled")
	}

	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if _, ok := ctrl.runners[organizationID]; ok {
		return fmt.Errorf("graph sync already running: %s", organizationID)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	runner := NewRunner(organizationID, ctrl.job, ctrl.interval)
	ctrl.runners[organizationID] = runnerDescriptor{
		cancelFunc: cancel,
		runner:     runner,
	}

	go runner.Run(runCtx)
	return nil
}

func (ctrl *DefaultController) Cancel(_ context.Context, organizationID string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	desc, ok := ctrl.runners[organizationID]
	if !ok {
		return fmt.Errorf("graph sync not running: %s", organizationID)
	}
	desc.cancelFunc()
	<-desc.runner.Done()

	delete(ctrl.runners, organizationID)
	return nil
}

func (ctrl *DefaultController) Running() []string {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	orgs := make([]string, 0, len(ctrl.runners))
	for org := range ctrl.runners {
		orgs = append(orgs, org)
	}
	sort.Strings(orgs)
	return orgs
}

// Close stops every runner and waits for them to exit.
func (ctrl *DefaultController) Close() {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	for org, desc := range ctrl.runners {
		desc.cancelFunc()
		<-desc.runner.Done()
		delete(ctrl.runners, org)
	}
}
