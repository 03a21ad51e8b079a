package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs    atomic.Int32
	err     error
	lastCtx atomic.Value
}

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	j.lastCtx.Store(ctx)
	return j.err
}

func (j *countingJob) Name() string { return "counting" }

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	err := s.AddJob("not a schedule", &countingJob{})
	assert.Error(t, err)
	assert.True(t, s.Next().IsZero())
}

func TestAddJob_FiveFieldSpecIsRejected(t *testing.T) {
	s := New(zerolog.Nop())
	assert.Error(t, s.AddJob("0 18 * * MON-FRI", &countingJob{}))
	assert.NoError(t, s.AddJob("0 0 18 * * MON-FRI", &countingJob{}))
}

func TestNext(t *testing.T) {
	s := New(zerolog.Nop())
	require.NoError(t, s.AddJob("@every 1h", &countingJob{}))
	require.NoError(t, s.AddJob("@every 10m", &countingJob{}))

	next := s.Next()
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), next, 5*time.Second)
}

func TestRunNow(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{err: errors.New("failed")}

	err := s.RunNow(job)
	assert.EqualError(t, err, "failed")
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestScheduledJobRunsAndStopCancels(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{}
	require.NoError(t, s.AddJob("@every 1s", job))

	s.Start()
	require.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()

	ctx, ok := job.lastCtx.Load().(context.Context)
	require.True(t, ok)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestFailingJobKeepsSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{err: errors.New("boom")}
	require.NoError(t, s.AddJob("@every 1s", job))

	s.Start()
	defer s.Stop()
	require.Eventually(t, func() bool { return job.runs.Load() >= 2 }, 4*time.Second, 50*time.Millisecond)
}
