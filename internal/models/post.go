package models

import "time"

// Post is a short text update owned by exactly one user. The hashtag and
// media image are optional; CreatedAt is set once and never updated.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Hashtag    string    `gorm:"size:60" json:"hashtag"`
	Text       string    `gorm:"not null;size:255" json:"text"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	MediaImage string    `json:"media_image"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	// CommentsCount is not persisted; computed at query time.
	CommentsCount int64 `gorm:"-" json:"comments_count"`
	// LikesCount counts only likes whose toggle is currently on; computed at query time.
	LikesCount int64 `gorm:"-" json:"likes_count"`
	// Liked indicates whether the requesting user's like toggle is currently on (computed).
	Liked bool `gorm:"-" json:"liked"`
}
