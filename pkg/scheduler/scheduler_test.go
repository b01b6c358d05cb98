package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := NewJobScheduler(time.Second)

	require.NoError(t, s.AddJob("cleanup", "0 * * * *", func(ctx context.Context) {}))
	assert.Error(t, s.AddJob("cleanup", "0 * * * *", func(ctx context.Context) {}))
	assert.Error(t, s.AddJob("broken", "not a cron", func(ctx context.Context) {}))

	jobs := s.ListJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "cleanup", jobs[0].ID)
	assert.Nil(t, jobs[0].LastRun)
}

func TestRunNow(t *testing.T) {
	s := NewJobScheduler(time.Second)
	var runs atomic.Int32
	var hadDeadline atomic.Bool

	require.NoError(t, s.AddJob("count", "0 0 * * *", func(ctx context.Context) {
		_, ok := ctx.Deadline()
		hadDeadline.Store(ok)
		runs.Add(1)
	}))
	require.NoError(t, s.RunNow("count"))

	assert.Equal(t, int32(1), runs.Load())
	assert.True(t, hadDeadline.Load())
	assert.NotNil(t, s.ListJobs()[0].LastRun)

	assert.Error(t, s.RunNow("missing"))
}

func TestPanickingJobIsRecovered(t *testing.T) {
	s := NewJobScheduler(time.Second)
	require.NoError(t, s.AddJob("boom", "0 0 * * *", func(ctx context.Context) { panic("boom") }))

	assert.NotPanics(t, func() { _ = s.RunNow("boom") })
}

func TestStartStopAndRemove(t *testing.T) {
	s := NewJobScheduler(0)
	require.NoError(t, s.AddJob("a", "0 0 * * *", func(ctx context.Context) {}))

	s.Start()
	assert.True(t, s.IsRunning())
	s.Start()

	require.NoError(t, s.RemoveJob("a"))
	assert.Error(t, s.RemoveJob("a"))
	assert.Empty(t, s.ListJobs())

	s.Stop()
	assert.False(t, s.IsRunning())
}
