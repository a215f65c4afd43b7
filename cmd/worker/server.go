package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"
	zlog "github.com/rs/zerolog/log"

	"memoir-backend/pkg/container"
)

// startWorker boots the asynq server in the background and returns it for
// shutdown control. Queue weights mirror the enqueue side: media conversions
// are user-visible and run first, compliance work next, cleanup last.
func startWorker(c *container.Container) *asynq.Server {
	mux := asynq.NewServeMux()
	registerHandlers(mux, c)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"high":    6,
				"default": 3,
				"low":     1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				zlog.Error().Err(err).Str("type", task.Type()).Msg("Task failed")
			}),
		},
	)

	go func() {
		if err := srv.Start(mux); err != nil {
			log.Fatalf("Failed to start worker: %v", err)
		}
	}()

	return srv
}
