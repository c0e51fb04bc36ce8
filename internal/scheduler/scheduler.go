// Package scheduler runs jobs on a cron schedule.
//
// Overlapping runs of the same job are skipped rather than queued, and a panicking
// job is recovered and logged so the schedule keeps going.
package scheduler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"

	"github.com/pfrederiksen/fixture-bot/internal/logger"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// parser accepts standard five-field specs, an optional leading seconds field, and
// descriptors such as "@every 100m" or "@hourly".
var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// New creates a scheduler evaluating specs in loc.
func New(log *logger.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	log = log.With(logger.Fields{"component": "scheduler"})
	cl := cronLogger{log: log}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithParser(parser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log: log,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started", logger.Fields{"jobs": len(s.cron.Entries())})
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped", nil)
}

// AddJob registers a job with a cron schedule.
// Schedule examples:
//   - "@every 100m"        - Every 100 minutes
//   - "*/30 * * * *"       - Every 30 minutes
//   - "0 0 9 * * *"        - 9 AM daily (with seconds)
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.run(job)
	})
	if err != nil {
		return errors.Wrapf(err, "registering job %s with schedule %q", job.Name(), schedule)
	}

	s.log.Info("Job registered", logger.Fields{
		"schedule": schedule,
		"job":      job.Name(),
	})
	return nil
}

// Next returns the next activation time of the earliest scheduled job, or the zero
// time when the scheduler is not running or has no jobs.
func (s *Scheduler) Next() time.Time {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if next.IsZero() || (!e.Next.IsZero() && e.Next.Before(next)) {
			next = e.Next
		}
	}
	return next
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info("Running job immediately", logger.Fields{"job": job.Name()})
	return job.Run()
}

func (s *Scheduler) run(job Job) {
	start := time.Now()
	s.log.Debug("Running job", logger.Fields{"job": job.Name()})

	if err := job.Run(); err != nil {
		logger.IncrCounter("scheduler.failures")
		s.log.Error("Job failed", logger.Fields{"job": job.Name()}, err)
		return
	}

	s.log.Debug("Job completed", logger.Fields{
		"job":      job.Name(),
		"duration": time.Since(start).String(),
	})
}

// cronLogger adapts logger.Logger to cron.Logger
type cronLogger struct {
	log *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug(msg, toFields(keysAndValues))
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error(msg, toFields(keysAndValues), err)
}

func toFields(keysAndValues []interface{}) logger.Fields {
	fields := make(logger.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
