package worker

import (
	"context"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}

type OnWork func() error

// BaseJob cron driven job, at most one tick in flight
type BaseJob struct {
	Cron    *cron.Cron
	OnWork  OnWork
	running atomic.Bool
}

// Tick cron callback, skipped while the previous tick is still working.
// Cron fires every invocation on its own goroutine, hence the CAS.
func (job *BaseJob) Tick() {
	if !job.running.CompareAndSwap(false, true) {
		return
	}
	defer job.running.Store(false)

	job.OnWork()
}

// Run start the cron and block until ctx is done
func (job *BaseJob) Run(ctx context.Context) error {
	job.Cron.Start()
	<-ctx.Done()
	<-job.Cron.Stop().Done()
	return ctx.Err()
}
