// Package models contains data structures for the application's domain models.
package models

import "time"

// Like is a persistent toggle record for a (post, user) pair.
// The combination of PostID and UserID must be unique.
//
// The first like action creates the row with IsLiked=true; every later
// action flips IsLiked in place. The row is never deleted by normal use,
// so it acts as a one-slot history rather than a counter log. Anything
// that counts likes must filter on is_liked.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	IsLiked   bool      `gorm:"not null" json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
