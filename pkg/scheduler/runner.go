package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/aqua-condition-service/pkg/common"
	"liyu1981.xyz/aqua-condition-service/pkg/metrics"
)

// Job is one periodic pass over the rules of a kind. Tick isolates per-rule failures
// itself; a returned error means the pass could not start at all.
type Job interface {
	Name() string
	Tick(ctx context.Context) error
}

// Runner drives a Job on a fixed interval aligned to wall-clock boundaries. Ticks run
// synchronously in the loop, so a slow tick delays the next one instead of overlapping it.
type Runner struct {
	job      Job
	interval time.Duration
	now      func() time.Time
}

func NewRunner(job Job, interval time.Duration) *Runner {
	return &Runner{job: job, interval: interval, now: time.Now}
}

func (r *Runner) untilNextTick() time.Duration {
	now := r.now()
	return now.Truncate(r.interval).Add(r.interval).Sub(now)
}

// Run blocks until ctx is cancelled. Work committed by a tick stays committed.
func (r *Runner) Run(ctx context.Context) {
	logger := common.GetLoggerWith(
		common.LoggerNameScheduler,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryRunner),
		zap.String("job", r.job.Name()),
	)
	logger.Info("Scheduler started", zap.Duration("interval", r.interval))

	timer := time.NewTimer(r.untilNextTick())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Scheduler stopped")
			return
		case <-timer.C:
			r.tick(ctx, logger)
			timer.Reset(r.untilNextTick())
		}
	}
}

func (r *Runner) tick(ctx context.Context, logger *zap.Logger) {
	start := time.Now()
	err := r.job.Tick(ctx)
	metrics.SchedulerTickDuration.WithLabelValues(r.job.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("Scheduler tick failed", zap.Error(err))
	}
}
