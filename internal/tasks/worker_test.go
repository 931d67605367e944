package tasks

import (
	"context"
	"encoding/json"
	"testing"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupWorker(t *testing.T) (*Worker, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Follow{}, &models.Post{}, &models.Comment{}, &models.Like{},
	))

	users := repository.NewUserRepository(db)
	posts := service.NewPostService(
		repository.NewPostRepository(db),
		repository.NewCommentRepository(db),
		users,
	)
	return NewWorker(posts, users), db
}

func setupQueueRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func TestEnqueueAndQueueLength(t *testing.T) {
	setupQueueRedis(t)
	ctx := context.Background()

	assert.Zero(t, QueueLength(ctx))
	EnqueuePostJob(ctx, PostJob{UserID: 1})
	EnqueuePostJob(ctx, PostJob{UserID: 2})
	assert.Equal(t, int64(2), QueueLength(ctx))
}

func TestEnqueueWithoutRedisIsSilent(t *testing.T) {
	cache.SetClient(nil)
	ctx := context.Background()

	EnqueuePostJob(ctx, PostJob{UserID: 1})
	assert.Zero(t, QueueLength(ctx))
}

func TestWorkerProcess_CreatesPlaceholderPost(t *testing.T) {
	worker, db := setupWorker(t)
	ctx := context.Background()

	user := &models.User{Username: "ann", Email: "ann@example.com", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	payload, err := json.Marshal(PostJob{UserID: user.ID})
	require.NoError(t, err)
	worker.process(ctx, payload)

	var post models.Post
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&post).Error)
	assert.Equal(t, "New post from user: ann", post.Text)
	assert.Equal(t, "queue", post.Hashtag)
}

func TestWorkerProcess_SkipsMissingUser(t *testing.T) {
	worker, db := setupWorker(t)

	payload, err := json.Marshal(PostJob{UserID: 99})
	require.NoError(t, err)
	worker.process(context.Background(), payload)

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}

func TestWorkerProcess_DiscardsMalformedPayload(t *testing.T) {
	worker, db := setupWorker(t)

	worker.process(context.Background(), []byte("not-json"))

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}
