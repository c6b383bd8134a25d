package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"infinite-ideas-hub/internal/config"
	"infinite-ideas-hub/internal/shared"
	"infinite-ideas-hub/pkg/logger"
)

// taskRegistrar is the slice of *asynq.Scheduler the jobs need
type taskRegistrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	registrar taskRegistrar
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
		LogLevel: asynq.InfoLevel,
	})

	return &Scheduler{
		scheduler: scheduler,
		registrar: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerCleanupPendingSubscribersJob()
}

// registerCleanupPendingSubscribersJob purges unconfirmed newsletter sign-ups
// whose confirmation window has closed. Hourly by default.
func (s *Scheduler) registerCleanupPendingSubscribersJob() error {
	payload, err := json.Marshal(shared.CleanupPendingSubscribersPayload{BatchSize: 1000})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupPendingSubscribers, payload)

	_, err = s.registrar.Register(
		s.jobConfig.PendingSubscriberCleanupCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupPendingSubscribers job", err)
		return err
	}

	logger.Info("✓ Registered CleanupPendingSubscribers", map[string]interface{}{
		"cron": s.jobConfig.PendingSubscriberCleanupCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
