package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	ticks   atomic.Int32
	running atomic.Int32
	overlap atomic.Bool
	delay   time.Duration
	err     error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Tick(ctx context.Context) error {
	if j.running.Add(1) > 1 {
		j.overlap.Store(true)
	}
	defer j.running.Add(-1)
	time.Sleep(j.delay)
	j.ticks.Add(1)
	return j.err
}

func TestRunnerTicksWithoutOverlapAndStops(t *testing.T) {
	job := &countingJob{delay: 15 * time.Millisecond, err: errors.New("ignored")}
	r := NewRunner(job, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return job.ticks.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after cancel")
	}
	assert.False(t, job.overlap.Load())
}

func TestRunnerAlignsToInterval(t *testing.T) {
	r := NewRunner(&countingJob{}, time.Hour)
	r.now = func() time.Time { return time.Date(2025, 5, 10, 6, 45, 0, 0, time.UTC) }
	assert.Equal(t, 15*time.Minute, r.untilNextTick())
}
