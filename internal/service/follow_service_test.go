package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("creates edge", func(t *testing.T) {
		var gotFollower, gotFollowee uint
		follows := noopFollowRepo()
		follows.followFn = func(_ context.Context, followerID, followeeID uint) error {
			gotFollower, gotFollowee = followerID, followeeID
			return nil
		}
		svc := NewFollowService(follows, noopUserRepo())

		require.NoError(t, svc.Follow(ctx, 1, 2))
		assert.Equal(t, uint(1), gotFollower)
		assert.Equal(t, uint(2), gotFollowee)
	})

	t.Run("self follow is a silent no-op", func(t *testing.T) {
		follows := noopFollowRepo()
		follows.followFn = func(_ context.Context, _, _ uint) error {
			t.Fatal("repo should not be called")
			return nil
		}
		svc := NewFollowService(follows, noopUserRepo())

		assert.NoError(t, svc.Follow(ctx, 1, 1))
	})

	t.Run("missing target is an error", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewFollowService(noopFollowRepo(), users)

		err := svc.Follow(ctx, 1, 99)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	ctx := context.Background()

	t.Run("removes edge", func(t *testing.T) {
		called := false
		follows := noopFollowRepo()
		follows.unfollowFn = func(_ context.Context, _, _ uint) error {
			called = true
			return nil
		}
		svc := NewFollowService(follows, noopUserRepo())

		require.NoError(t, svc.Unfollow(ctx, 1, 2))
		assert.True(t, called)
	})

	t.Run("self unfollow is a silent no-op", func(t *testing.T) {
		follows := noopFollowRepo()
		follows.unfollowFn = func(_ context.Context, _, _ uint) error {
			t.Fatal("repo should not be called")
			return nil
		}
		svc := NewFollowService(follows, noopUserRepo())

		assert.NoError(t, svc.Unfollow(ctx, 3, 3))
	})

	t.Run("missing target is an error", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewFollowService(noopFollowRepo(), users)

		assert.Error(t, svc.Unfollow(ctx, 1, 99))
	})
}
