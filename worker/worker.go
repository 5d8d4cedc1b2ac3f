package worker

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// IJob job的接口
type IJob interface {
	Start() error
	Run()
	Stop() error
}

// OnWork one round of a job
type OnWork func() error

// BaseJob cron driven job, a round is skipped while the previous one is still running
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork

	mutex sync.Mutex
}

// Schedule run onWork on spec in location, an unknown location falls back to UTC
func (job *BaseJob) Schedule(location, spec string, onWork OnWork) error {
	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.UTC
	}

	job.Cron = cron.New(cron.WithLocation(l))
	job.OnWork = onWork
	_, err = job.Cron.AddFunc(spec, job.Run)
	return err
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
	job.mutex.Lock()
	if job.IsRunning {
		job.mutex.Unlock()
		return
	}
	job.IsRunning = true
	job.mutex.Unlock()

	defer func() {
		job.mutex.Lock()
		job.IsRunning = false
		job.mutex.Unlock()
	}()

	job.OnWork()
}
