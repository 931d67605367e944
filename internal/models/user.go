// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// User represents an account in the Ripple application.
//
// Users are ordered by (first_name, last_name) wherever they are listed.
// Deleting a user is a hard delete that cascades to everything the user
// owns or authored, including follow edges in both directions.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"unique;not null;size:254" json:"email"`
	Username     string    `gorm:"unique;not null;size:60" json:"username"`
	Password     string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"size:60" json:"first_name"`
	LastName     string    `gorm:"size:60" json:"last_name"`
	Bio          string    `json:"bio"`
	OtherDetails string    `json:"other_details"`
	Image        string    `json:"image"`
	IsStaff      bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// FollowersCount and FollowingCount are not persisted; computed at query time.
	FollowersCount int64 `gorm:"-" json:"followers_count"`
	FollowingCount int64 `gorm:"-" json:"following_count"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// DisplayName returns the user's human-readable name, "First Last".
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
