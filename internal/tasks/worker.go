package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ripple/internal/cache"
	"ripple/internal/middleware"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/redis/go-redis/v9"
)

// Worker consumes post jobs from the queue and creates the placeholder post
// for each new account.
type Worker struct {
	posts *service.PostService
	users repository.UserRepository
}

// NewWorker returns a Worker wired to the given services.
func NewWorker(posts *service.PostService, users repository.UserRepository) *Worker {
	return &Worker{posts: posts, users: users}
}

// Run blocks consuming jobs until ctx is cancelled. Without Redis it
// returns immediately; the queue is an optional capability.
func (w *Worker) Run(ctx context.Context) {
	client := cache.GetClient()
	if client == nil {
		middleware.Logger.Info("Post worker disabled, Redis unavailable")
		return
	}
	middleware.Logger.Info("Post worker started")

	for {
		res, err := client.BRPop(ctx, 5*time.Second, postsQueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				middleware.Logger.Info("Post worker stopped")
				return
			}
			middleware.Logger.ErrorContext(ctx, "Post worker poll failed", "error", err)
			time.Sleep(time.Second)
			continue
		}
		// BRPop returns [key, value]
		if len(res) != 2 {
			continue
		}
		w.process(ctx, []byte(res[1]))
	}
}

func (w *Worker) process(ctx context.Context, payload []byte) {
	var job PostJob
	if err := json.Unmarshal(payload, &job); err != nil {
		middleware.Logger.ErrorContext(ctx, "Discarding malformed post job", "error", err)
		return
	}

	user, err := w.users.GetByID(ctx, job.UserID)
	if err != nil {
		// The account may have been deleted between enqueue and pickup.
		middleware.Logger.WarnContext(ctx, "Skipping post job for missing user", "user_id", job.UserID)
		return
	}

	_, err = w.posts.CreatePost(ctx, service.CreatePostInput{
		UserID:  user.ID,
		Text:    fmt.Sprintf("New post from user: %s", user.Username),
		Hashtag: "queue",
		Source:  "worker",
	})
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "Failed to create placeholder post", "error", err, "user_id", user.ID)
		return
	}
	middleware.Logger.InfoContext(ctx, "Created placeholder post", "user_id", user.ID)
}
