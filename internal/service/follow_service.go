package service

import (
	"context"

	"ripple/internal/observability"
	"ripple/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates the directed edge from follower to target. Following
// yourself or someone you already follow succeeds without changing
// anything; a missing target is an error.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return nil
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.followRepo.Follow(ctx, followerID, targetID); err != nil {
		return err
	}
	observability.FollowActions.WithLabelValues("follow").Inc()
	return nil
}

// Unfollow removes the directed edge if present. Unfollowing yourself or
// someone you don't follow is a no-op; a missing target is an error.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return nil
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.followRepo.Unfollow(ctx, followerID, targetID); err != nil {
		return err
	}
	observability.FollowActions.WithLabelValues("unfollow").Inc()
	return nil
}

// IsFollowing reports whether follower currently follows target.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, targetID)
}
