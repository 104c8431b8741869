package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"golang-stock-intel/internal/pipeline/service"
	"golang-stock-intel/pkg/logger"
)

// Scheduler runs the daily pipeline on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	job      cron.Job
	inflight sync.WaitGroup
	pipeline service.PipelineService
	logger   *logger.Logger
	ctx      context.Context
	runHour  int
}

// NewScheduler creates a Scheduler firing at runHour:00 in loc. Ticks run
// with ctx, so cancelling it aborts an in-flight run.
func NewScheduler(ctx context.Context, pipeline service.PipelineService, runHour int, loc *time.Location, log *logger.Logger) (*Scheduler, error) {
	if runHour < 0 || runHour > 23 {
		return nil, fmt.Errorf("invalid run hour %d, expected 0-23", runHour)
	}
	if loc == nil {
		loc = time.UTC
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		pipeline: pipeline,
		logger:   log,
		ctx:      ctx,
		runHour:  runHour,
	}
	// Scheduled ticks and manual runs share one wrapper, so they never overlap.
	s.job = cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(s.dailyRun))

	if _, err := s.cron.AddJob(Spec(runHour), s.job); err != nil {
		return nil, fmt.Errorf("register daily run: %w", err)
	}
	return s, nil
}

// Spec returns the cron expression for a daily run at hour:00.
func Spec(hour int) string {
	return fmt.Sprintf("0 %d * * *", hour)
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", logger.IntField("run_hour", s.runHour))
}

// Stop stops the scheduler and waits for running jobs, including ones
// started by RunInBackground, to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.inflight.Wait()
	s.logger.Info("Scheduler stopped")
}

// RunNow executes the daily run immediately. It returns at once without
// running when another run is still in progress.
func (s *Scheduler) RunNow() {
	s.job.Run()
}

// RunInBackground starts RunNow on its own goroutine. Stop waits for it.
func (s *Scheduler) RunInBackground() {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.RunNow()
	}()
}

// NextRun returns the next scheduled activation.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(time.Now())
}

func (s *Scheduler) dailyRun() {
	s.logger.Info("Running scheduled pipeline")
	report, err := s.pipeline.RunDaily(s.ctx, "", false)
	if err != nil {
		s.logger.Error("Scheduled pipeline failed", logger.ErrorField(err))
		return
	}
	s.logger.Info("Scheduled pipeline completed",
		logger.StringField("date", report.Date),
		logger.BoolField("succeeded", report.Succeeded()),
		logger.BoolField("already_analyzed", report.AlreadyAnalyzed),
	)
}
