package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"memoir-backend/internal/shared"
)

// Client enqueues background tasks for the worker.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueMediaConversions schedules rendition generation for a freshly
// uploaded media item. Until the worker finishes, rendition lookups fall
// back to the original URL.
func (c *Client) EnqueueMediaConversions(ctx context.Context, mediaID string) error {
	return c.enqueue(ctx, shared.TypeProcessMediaConversions,
		shared.ProcessMediaConversionsPayload{MediaID: mediaID},
		asynq.Queue(shared.QueueMedia),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
}

// EnqueueMediaCleanup schedules removal of stored objects for deleted media.
func (c *Client) EnqueueMediaCleanup(ctx context.Context, storageKeyPrefix string) error {
	return c.enqueue(ctx, shared.TypeCleanupMediaObjects,
		shared.CleanupMediaObjectsPayload{StorageKeyPrefix: storageKeyPrefix},
		asynq.Queue(shared.QueueCleanup),
		asynq.MaxRetry(5),
		asynq.Timeout(5*time.Minute),
	)
}

// EnqueueDataExport schedules generation of a GDPR data export.
func (c *Client) EnqueueDataExport(ctx context.Context, requestID string) error {
	return c.enqueue(ctx, shared.TypeGenerateDataExport,
		shared.GenerateDataExportPayload{RequestID: requestID},
		asynq.Queue(shared.QueueCompliance),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
	)
}

// EnqueueAccountDeletion schedules processing of a confirmed account
// deletion request.
func (c *Client) EnqueueAccountDeletion(ctx context.Context, requestID string) error {
	return c.enqueue(ctx, shared.TypeProcessAccountDeletion,
		shared.ProcessAccountDeletionPayload{RequestID: requestID},
		asynq.Queue(shared.QueueCompliance),
		asynq.MaxRetry(5),
		asynq.Timeout(10*time.Minute),
	)
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, data)
	if _, err := c.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}

	return nil
}
