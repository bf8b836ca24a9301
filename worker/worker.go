package worker

import (
	"sync"

	"github.com/robfig/cron/v3"
)

// IJob cron scheduled job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

// BaseJob runs OnWork on the cron schedule, overlapping runs are skipped
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork

	mu sync.Mutex
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	job.mu.Lock()
	if job.IsRunning {
		job.mu.Unlock()
		return
	}

	job.IsRunning = true
	job.mu.Unlock()

	defer func() {
		job.mu.Lock()
		job.IsRunning = false
		job.mu.Unlock()
	}()

	_ = job.OnWork()
}
