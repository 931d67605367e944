package repository

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_FollowIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	ann := createTestUser(t, db, "ann", "Ann", "Lee")
	bob := createTestUser(t, db, "bob", "Bob", "Lee")

	require.NoError(t, repo.Follow(ctx, ann.ID, bob.ID))
	require.NoError(t, repo.Follow(ctx, ann.ID, bob.ID))

	var count int64
	db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", ann.ID, bob.ID).
		Count(&count)
	assert.Equal(t, int64(1), count, "repeated follow must leave exactly one edge")

	following, err := repo.IsFollowing(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// Direction matters
	following, err = repo.IsFollowing(ctx, bob.ID, ann.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowRepository_UnfollowIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	ann := createTestUser(t, db, "ann", "Ann", "Lee")
	bob := createTestUser(t, db, "bob", "Bob", "Lee")

	require.NoError(t, repo.Follow(ctx, ann.ID, bob.ID))
	require.NoError(t, repo.Unfollow(ctx, ann.ID, bob.ID))
	// Removing a missing edge is a no-op
	require.NoError(t, repo.Unfollow(ctx, ann.ID, bob.ID))

	following, err := repo.IsFollowing(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	ann := createTestUser(t, db, "ann", "Ann", "Lee")
	bob := createTestUser(t, db, "bob", "Bob", "Lee")
	cam := createTestUser(t, db, "cam", "Cam", "Reed")

	require.NoError(t, repo.Follow(ctx, bob.ID, ann.ID))
	require.NoError(t, repo.Follow(ctx, cam.ID, ann.ID))
	require.NoError(t, repo.Follow(ctx, ann.ID, bob.ID))

	followers, following, err := repo.Counts(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)
	assert.Equal(t, int64(1), following)
}

func TestFollowRepository_FollowingAndFollowers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	ann := createTestUser(t, db, "ann", "Ann", "Lee")
	bob := createTestUser(t, db, "bob", "Bob", "Lee")
	cam := createTestUser(t, db, "cam", "Cam", "Reed")

	require.NoError(t, repo.Follow(ctx, ann.ID, cam.ID))
	require.NoError(t, repo.Follow(ctx, ann.ID, bob.ID))
	require.NoError(t, repo.Follow(ctx, bob.ID, ann.ID))

	following, err := repo.Following(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, following, 2)
	// Ordered by (first_name, last_name)
	assert.Equal(t, "bob", following[0].Username)
	assert.Equal(t, "cam", following[1].Username)

	followers, err := repo.Followers(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "bob", followers[0].Username)
}
