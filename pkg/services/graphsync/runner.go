package graphsync

import (
	"context"
	"time"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Runner re-syncs one organization on a fixed interval until its context is
// cancelled. A failed run is not retried; the next tick is a fresh full sync.
type Runner struct {
	organizationID string
	job            Job
	interval       time.Duration
	done           chan struct{}
	results        chan domain.SyncLog
}

func NewRunner(organizationID string, job Job, interval time.Duration) *Runner {
	return &Runner{
		organizationID: organizationID,
		job:            job,
		interval:       interval,
		done:           make(chan struct{}),
		results:        make(chan domain.SyncLog, 16),
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Results delivers every sync log produced by the runner. Logs are dropped
// when nobody is reading.
func (r *Runner) Results() <-chan domain.SyncLog {
	return r.results
}

func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("organization_id", r.organizationID).Logger()
	defer close(r.done)
	defer close(r.results)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		entry, err := r.job.Sync(ctx, r.organizationID)
		if err != nil {
			logger.Error().Err(err).Msg("failed to record graph sync")
		}
		select {
		case r.results <- entry:
		default:
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("periodic graph sync stopped")
			return
		case <-ticker.C:
		}
	}
}
