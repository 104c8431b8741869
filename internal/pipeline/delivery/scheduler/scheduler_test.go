package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-intel/internal/pipeline/dto"
	"golang-stock-intel/pkg/logger"
)

type fakePipeline struct {
	calls int
	err   error
}

func (f *fakePipeline) RunDaily(_ context.Context, date string, force bool) (*dto.RunReport, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.RunReport{Date: "2024-01-15", Forced: force}, nil
}

func TestSpec(t *testing.T) {
	assert.Equal(t, "0 9 * * *", Spec(9))
	assert.Equal(t, "0 0 * * *", Spec(0))
}

func TestNewSchedulerRejectsInvalidHour(t *testing.T) {
	for _, hour := range []int{-1, 24} {
		_, err := NewScheduler(context.Background(), &fakePipeline{}, hour, nil, logger.NewNop())
		assert.Error(t, err)
	}
}

func TestNextRun(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	s, err := NewScheduler(context.Background(), &fakePipeline{}, 9, loc, logger.NewNop())
	require.NoError(t, err)

	next := s.NextRun().In(loc)
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestRunNowSurvivesFailures(t *testing.T) {
	pipeline := &fakePipeline{err: errors.New("source unavailable")}
	s, err := NewScheduler(context.Background(), pipeline, 9, time.UTC, logger.NewNop())
	require.NoError(t, err)

	assert.NotPanics(t, s.RunNow)
	pipeline.err = nil
	s.RunNow()
	assert.Equal(t, 2, pipeline.calls)

	s.Start()
	s.Stop()
}

type blockingPipeline struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (b *blockingPipeline) RunDaily(_ context.Context, _ string, _ bool) (*dto.RunReport, error) {
	b.calls.Add(1)
	b.started <- struct{}{}
	<-b.release
	return &dto.RunReport{Date: "2024-01-15"}, nil
}

func TestRunNowSkipsWhileBackgroundRunInProgress(t *testing.T) {
	pipeline := &blockingPipeline{started: make(chan struct{}, 1), release: make(chan struct{})}
	s, err := NewScheduler(context.Background(), pipeline, 9, time.UTC, logger.NewNop())
	require.NoError(t, err)

	s.RunInBackground()
	select {
	case <-pipeline.started:
	case <-time.After(2 * time.Second):
		t.Fatal("background run did not start")
	}

	s.RunNow()
	assert.Equal(t, int32(1), pipeline.calls.Load())

	close(pipeline.release)
	s.Stop()
	assert.Equal(t, int32(1), pipeline.calls.Load())
}

func TestStopWaitsForBackgroundRun(t *testing.T) {
	pipeline := &blockingPipeline{started: make(chan struct{}, 1), release: make(chan struct{})}
	s, err := NewScheduler(context.Background(), pipeline, 9, time.UTC, logger.NewNop())
	require.NoError(t, err)
	s.Start()

	s.RunInBackground()
	<-pipeline.started

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a run was in progress")
	case <-time.After(50 * time.Millisecond):
	}

	close(pipeline.release)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the run finished")
	}
}
