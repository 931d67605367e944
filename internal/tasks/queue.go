// Package tasks provides the background job queue. Jobs are JSON payloads
// pushed onto a Redis list and consumed by a Worker in the server process.
package tasks

import (
	"context"
	"encoding/json"

	"ripple/internal/cache"
	"ripple/internal/middleware"
	"ripple/internal/observability"
)

// postsQueueKey is the Redis list holding pending placeholder-post jobs.
const postsQueueKey = "ripple:queue:posts"

// PostJob asks the worker to create the placeholder post for a new account.
type PostJob struct {
	UserID uint `json:"user_id"`
}

// EnqueuePostJob pushes a placeholder-post job onto the queue. Without Redis
// the job is silently dropped; registration must not fail because the
// queue is down.
func EnqueuePostJob(ctx context.Context, job PostJob) {
	client := cache.GetClient()
	if client == nil {
		return
	}
	payload, err := json.Marshal(job)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "Failed to marshal post job", "error", err)
		return
	}
	if err := client.LPush(ctx, postsQueueKey, payload).Err(); err != nil {
		observability.RedisErrors.WithLabelValues("lpush").Inc()
		middleware.Logger.ErrorContext(ctx, "Failed to enqueue post job", "error", err, "user_id", job.UserID)
	}
}

// QueueLength returns the number of pending jobs, for health reporting.
func QueueLength(ctx context.Context) int64 {
	client := cache.GetClient()
	if client == nil {
		return 0
	}
	n, err := client.LLen(ctx, postsQueueKey).Result()
	if err != nil {
		return 0
	}
	return n
}
