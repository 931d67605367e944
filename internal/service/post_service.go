package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/policy"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

type CreatePostInput struct {
	UserID     uint
	Text       string
	Hashtag    string
	MediaImage string
	// Source labels the posts-created metric; defaults to "api".
	Source string
}

type UpdatePostInput struct {
	ActorID    uint
	PostID     uint
	Text       *string
	Hashtag    *string
	MediaImage *string
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// CreatePost validates the input and stores a new post for the user.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateHashtag(in.Hashtag); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	owner, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:  owner.ID,
		Text:    in.Text,
		Hashtag: in.Hashtag,
	}
	if in.MediaImage != "" {
		post.MediaImage = PostImagePath(owner.Username, in.MediaImage)
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	source := in.Source
	if source == "" {
		source = "api"
	}
	observability.PostsCreated.WithLabelValues(source).Inc()

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// ListPosts returns the posts visible to the viewer, newest first.
func (s *PostService) ListPosts(ctx context.Context, viewerID uint, filter repository.PostFilter, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListVisible(ctx, viewerID, filter, limit, offset)
}

// GetPost returns a single post if the viewer is allowed to see it.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	return s.postRepo.GetVisibleByID(ctx, postID, viewerID)
}

// UpdatePost applies a partial update to a post owned by the actor.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetVisibleByID(ctx, in.PostID, in.ActorID)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, in.ActorID)
	if err != nil {
		return nil, err
	}
	if d := policy.CanMutatePost(actor, post); !d.Allowed {
		return nil, models.NewForbiddenError(d.Reason)
	}

	if in.Text != nil {
		if err := validation.ValidatePostText(*in.Text); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Text = *in.Text
	}
	if in.Hashtag != nil {
		if err := validation.ValidateHashtag(*in.Hashtag); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Hashtag = *in.Hashtag
	}
	if in.MediaImage != nil {
		post.MediaImage = PostImagePath(post.User.Username, *in.MediaImage)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.ActorID)
}

// DeletePost removes a post and its comments and likes.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.postRepo.GetVisibleByID(ctx, postID, actorID)
	if err != nil {
		return err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if d := policy.CanMutatePost(actor, post); !d.Allowed {
		return models.NewForbiddenError(d.Reason)
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the user's like on a visible post and returns the
// resulting state.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	if _, err := s.postRepo.GetVisibleByID(ctx, postID, userID); err != nil {
		return false, err
	}
	liked, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	state := "unliked"
	if liked {
		state = "liked"
	}
	observability.LikesToggled.WithLabelValues(state).Inc()
	return liked, nil
}

// AddComment appends a comment to a visible post.
func (s *PostService) AddComment(ctx context.Context, postID, userID uint, text string) (*models.Comment, error) {
	if err := validation.ValidatePostText(text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.postRepo.GetVisibleByID(ctx, postID, userID); err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Text: text}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.CommentsCreated.Inc()

	comment.User = *author
	return comment, nil
}

// ListComments returns a visible post's comments, newest first.
func (s *PostService) ListComments(ctx context.Context, postID, viewerID uint, limit, offset int) ([]models.Comment, error) {
	if _, err := s.postRepo.GetVisibleByID(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

// LikedPosts returns the posts whose like toggle the user currently has on.
func (s *PostService) LikedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.LikedByUser(ctx, userID, limit, offset)
}
