// Package seed provides helpers to create demo data for the application
// database. Intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var hashtags = []string{
	"travel", "food", "music", "coding", "fitness", "books",
	"photography", "gaming", "nature", "coffee",
}

// CreateUser constructs and persists a sample user. All seeded accounts
// share the password "password123" so they can be logged into.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Bio:       gofakeit.Sentence(10),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample post for the given user,
// with a created_at spread over the past 90 days.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:    user.ID,
		Text:      gofakeit.Sentence(8),
		Hashtag:   hashtags[f.rand.Intn(len(hashtags))],
		CreatedAt: time.Now().Add(-time.Duration(f.rand.Intn(90*24)) * time.Hour),
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a sample comment by the user on the post.
func (f *Factory) CreateComment(post *models.Post, user *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   gofakeit.Sentence(6),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like toggle row for the pair. Roughly one in five
// seeded likes is toggled off, mirroring real unlike behavior.
func (f *Factory) CreateLike(post *models.Post, user *models.User) (*models.Like, error) {
	like := &models.Like{
		PostID:  post.ID,
		UserID:  user.ID,
		IsLiked: f.rand.Intn(5) != 0,
	}
	if err := f.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

// CreateFollow persists a follow edge. Self-edges are skipped.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	if follower.ID == followee.ID {
		return nil
	}
	return f.db.Create(&models.Follow{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}).Error
}
