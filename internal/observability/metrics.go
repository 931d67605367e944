// Package observability provides Prometheus metrics for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FollowActions counts follow-edge mutations by action (follow/unfollow).
	FollowActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_follow_actions_total",
		Help: "Total number of follow edge mutations by action",
	}, []string{"action"})

	// LikesToggled counts like toggles by resulting state (liked/unliked).
	LikesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_likes_toggled_total",
		Help: "Total number of like toggles by resulting state",
	}, []string{"state"})

	// PostsCreated counts posts created by source (api/worker/seed).
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_posts_created_total",
		Help: "Total number of posts created by source",
	}, []string{"source"})

	// CommentsCreated counts comments created through the API.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_comments_created_total",
		Help: "Total number of comments created",
	})
)
