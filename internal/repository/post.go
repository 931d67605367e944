// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter holds optional case-insensitive substring filters for post listings.
type PostFilter struct {
	Hashtag  string
	Username string
}

// PostRepository defines persistence operations for posts and their likes.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	GetVisibleByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	ListVisible(ctx context.Context, viewerID uint, filter PostFilter, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, postID, userID uint) (bool, error)
	LikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// GetVisibleByID retrieves a post only if the viewer may see it: the
// viewer owns it or follows its owner. A post outside the viewer's
// visible set reads as not found, matching the list surface.
func (r *postRepository) GetVisibleByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyVisibility(r.applyPostDetails(r.db.WithContext(ctx), viewerID), viewerID).
		Preload("User").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListVisible returns the viewer's feed: own posts plus posts of followed
// users, newest first. Hashtag and owner-username filters conjoin with
// the visibility predicate.
func (r *postRepository) ListVisible(ctx context.Context, viewerID uint, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post

	query := r.applyVisibility(r.applyPostDetails(r.db.WithContext(ctx), viewerID), viewerID)
	query = applySubstringFilter(query, "posts.hashtag", filter.Hashtag)
	if filter.Username != "" {
		query = query.
			Joins("JOIN users ON users.id = posts.user_id").
			Where("LOWER(users.username) LIKE ?", "%"+strings.ToLower(filter.Username)+"%")
	}

	err := query.
		Preload("User").
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a post together with its comments and likes.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleLike flips the persistent like toggle for (post, user) inside a
// single transaction. It first attempts to insert the row with
// is_liked=true; on conflict with the unique (post_id, user_id) index the
// existing row is read back under lock and flipped in place, so exactly
// one row exists per pair and two concurrent first likes serialize into
// one insert and one flip instead of a duplicate-key failure.
func (r *postRepository) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := models.Like{PostID: postID, UserID: userID, IsLiked: true}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = true
			return nil
		}

		query := tx.Where("post_id = ? AND user_id = ?", postID, userID)
		if tx.Dialector.Name() == "postgres" {
			// sqlite (tests) serializes writers on its own and rejects FOR UPDATE
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing models.Like
		if err := query.First(&existing).Error; err != nil {
			return err
		}
		existing.IsLiked = !existing.IsLiked
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		liked = existing.IsLiked
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return liked, nil
}

// LikedByUser returns the posts whose like toggle is currently on for the
// given user, newest post first.
func (r *postRepository) LikedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), userID).
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ? AND likes.is_liked = ?", userID, true).
		Preload("User").
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applyPostDetails attaches the computed comment/like counts and the
// viewer's current like state to the selected columns.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id AND likes.is_liked = true) as likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ? AND likes.is_liked = true) as liked",
			viewerID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// applyVisibility restricts the query to posts the viewer may see:
// own posts plus posts of followed users.
func (r *postRepository) applyVisibility(db *gorm.DB, viewerID uint) *gorm.DB {
	return db.Where(
		"posts.user_id = ? OR posts.user_id IN (SELECT followee_id FROM follows WHERE follower_id = ?)",
		viewerID, viewerID,
	)
}
