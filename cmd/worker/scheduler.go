package main

import (
	"log"

	"memoir-backend/internal/infrastructure/queue"
	"memoir-backend/pkg/container"
)

// startScheduler registers the periodic cleanup jobs and runs the scheduler
// in the background.
func startScheduler(c *container.Container) *queue.Scheduler {
	scheduler := queue.NewScheduler(c.Config.Redis.Host, c.Config.Jobs)

	if err := scheduler.RegisterCleanupJobs(); err != nil {
		log.Fatalf("Failed to register scheduled jobs: %v", err)
	}

	go func() {
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}()

	return scheduler
}
