package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"memoir-backend/internal/config"
	"memoir-backend/internal/shared"
	"memoir-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddr string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	if err := s.registerPurgeDeletedMediaJob(); err != nil {
		return err
	}

	return s.registerPurgeExpiredExportsJob()
}

// Purge soft-deleted media (daily at 2 AM).
// Superseded featured images and user-removed items accumulate as
// soft-deleted rows; after the retention window their rows and stored
// objects are removed for good.
func (s *Scheduler) registerPurgeDeletedMediaJob() error {
	payload, err := json.Marshal(shared.PurgeDeletedMediaPayload{
		OlderThanDays: s.jobConfig.MediaPurgeRetentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePurgeDeletedMedia, payload)

	_, err = s.scheduler.Register(
		"0 2 * * *",
		task,
		asynq.Queue(shared.QueueCleanup),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register PurgeDeletedMedia job", err)
		return err
	}

	logger.Info("Registered PurgeDeletedMedia: daily at 2 AM", map[string]interface{}{})
	return nil
}

// Purge expired data exports (daily at 3 AM, staggered from media purge).
func (s *Scheduler) registerPurgeExpiredExportsJob() error {
	payload, err := json.Marshal(shared.PurgeExpiredExportsPayload{
		OlderThanDays: s.jobConfig.ExportRetentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePurgeExpiredExports, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *",
		task,
		asynq.Queue(shared.QueueCleanup),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register PurgeExpiredExports job", err)
		return err
	}

	logger.Info("Registered PurgeExpiredExports: daily at 3 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
