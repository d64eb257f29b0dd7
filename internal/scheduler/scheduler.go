// Package scheduler runs named periodic jobs on robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fd1az/eco-market-bot/internal/apperror"
	"github.com/fd1az/eco-market-bot/internal/logger"
)

// Job is a unit of scheduled work.
type Job func(ctx context.Context)

// JobOption modifies how a job is wrapped.
type JobOption func(*jobSettings)

type jobSettings struct {
	skipFirst bool
}

// SkipFirst drops the first scheduled tick after Start.
func SkipFirst() JobOption {
	return func(s *jobSettings) {
		s.skipFirst = true
	}
}

// Runner owns a cron instance with second-resolution specs.
type Runner struct {
	cron    *cron.Cron
	log     logger.LoggerInterface
	baseCtx context.Context
}

// New creates a runner. Jobs receive baseCtx, so cancelling it stops in-flight work.
func New(baseCtx context.Context, log logger.LoggerInterface) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	cl := cronLogger{log: log, ctx: baseCtx}
	return &Runner{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:     log,
		baseCtx: baseCtx,
	}
}

// Add registers job under spec, a six-field cron expression or a descriptor like "@every 5m".
func (r *Runner) Add(name, spec string, job Job, opts ...JobOption) (cron.EntryID, error) {
	var s jobSettings
	for _, opt := range opts {
		opt(&s)
	}

	wrapped := r.wrap(name, job, s)
	id, err := r.cron.AddFunc(spec, wrapped)
	if err != nil {
		return 0, apperror.New(apperror.CodeScheduleInvalid,
			apperror.WithCause(err),
			apperror.WithContext(fmt.Sprintf("%s: %q", name, spec)))
	}

	r.log.Info(r.baseCtx, "job scheduled", "job", name, "spec", spec)
	return id, nil
}

// Every registers job to run at a fixed interval.
func (r *Runner) Every(name string, interval time.Duration, job Job, opts ...JobOption) (cron.EntryID, error) {
	return r.Add(name, "@every "+interval.String(), job, opts...)
}

func (r *Runner) wrap(name string, job Job, s jobSettings) func() {
	var skipped atomic.Bool
	return func() {
		if s.skipFirst && skipped.CompareAndSwap(false, true) {
			r.log.Debug(r.baseCtx, "skipping first tick", "job", name)
			return
		}
		if r.baseCtx.Err() != nil {
			return
		}
		start := time.Now()
		job(r.baseCtx)
		r.log.Debug(r.baseCtx, "job finished", "job", name, "elapsed", time.Since(start).String())
	}
}

// Next returns the next activation time of id.
func (r *Runner) Next(id cron.EntryID) time.Time {
	return r.cron.Entry(id).Next
}

// Start starts the scheduler in its own goroutine.
func (r *Runner) Start() {
	r.log.Info(r.baseCtx, "scheduler started", "jobs", len(r.cron.Entries()))
	r.cron.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info(context.Background(), "scheduler stopped")
}

// cronLogger adapts LoggerInterface to cron.Logger.
type cronLogger struct {
	log logger.LoggerInterface
	ctx context.Context
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.log.Debug(c.ctx, "cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.log.Error(c.ctx, "cron: "+msg, append(keysAndValues, "error", err)...)
}
