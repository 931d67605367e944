package server

import (
	"time"

	"ripple/internal/models"
)

// Response shapes are a fixed mapping per endpoint. Each handler picks its
// view struct and conversion function explicitly; nothing is selected at
// runtime.

// UserListItem is the row shape for GET /users.
type UserListItem struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Image          string `json:"image"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}

// UserDetail is the shape for GET /users/:id. Following and Followers
// carry usernames only.
type UserDetail struct {
	ID           uint     `json:"id"`
	Username     string   `json:"username"`
	Image        string   `json:"image"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Bio          string   `json:"bio"`
	OtherDetails string   `json:"other_details"`
	Following    []string `json:"following"`
	Followers    []string `json:"followers"`
}

// MeView is the shape for GET/PATCH /me and POST /register.
type MeView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Bio          string `json:"bio"`
	OtherDetails string `json:"other_details"`
	Image        string `json:"image"`
	IsStaff      bool   `json:"is_staff"`
}

// PostListItem is the row shape for GET /posts and GET /liked-posts.
type PostListItem struct {
	ID            uint      `json:"id"`
	Hashtag       string    `json:"hashtag"`
	Text          string    `json:"text"`
	UserUsername  string    `json:"user_username"`
	MediaImage    string    `json:"media_image"`
	CreatedAt     time.Time `json:"created_at"`
	CommentsCount int64     `json:"comments_count"`
	LikesCount    int64     `json:"likes_count"`
	Liked         bool      `json:"liked"`
}

// PostDetail is the shape for GET /posts/:id; the owner is embedded as a
// UserListItem.
type PostDetail struct {
	ID            uint         `json:"id"`
	Hashtag       string       `json:"hashtag"`
	Text          string       `json:"text"`
	User          UserListItem `json:"user"`
	MediaImage    string       `json:"media_image"`
	CreatedAt     time.Time    `json:"created_at"`
	CommentsCount int64        `json:"comments_count"`
	LikesCount    int64        `json:"likes_count"`
	Liked         bool         `json:"liked"`
}

// CommentView is the shape for comment reads and creation responses.
type CommentView struct {
	ID           uint      `json:"id"`
	PostID       uint      `json:"post_id"`
	UserUsername string    `json:"user_username"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserListItem(u *models.User) UserListItem {
	return UserListItem{
		ID:             u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Image:          u.Image,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
	}
}

func toUserListItems(users []models.User) []UserListItem {
	items := make([]UserListItem, 0, len(users))
	for i := range users {
		items = append(items, toUserListItem(&users[i]))
	}
	return items
}

func toUserDetail(u *models.User, following, followers []models.User) UserDetail {
	return UserDetail{
		ID:           u.ID,
		Username:     u.Username,
		Image:        u.Image,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Bio:          u.Bio,
		OtherDetails: u.OtherDetails,
		Following:    usernames(following),
		Followers:    usernames(followers),
	}
}

func toMeView(u *models.User) MeView {
	return MeView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Bio:          u.Bio,
		OtherDetails: u.OtherDetails,
		Image:        u.Image,
		IsStaff:      u.IsStaff,
	}
}

func toPostListItem(p *models.Post) PostListItem {
	return PostListItem{
		ID:            p.ID,
		Hashtag:       p.Hashtag,
		Text:          p.Text,
		UserUsername:  p.User.Username,
		MediaImage:    p.MediaImage,
		CreatedAt:     p.CreatedAt,
		CommentsCount: p.CommentsCount,
		LikesCount:    p.LikesCount,
		Liked:         p.Liked,
	}
}

func toPostListItems(posts []*models.Post) []PostListItem {
	items := make([]PostListItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, toPostListItem(p))
	}
	return items
}

func toPostDetail(p *models.Post) PostDetail {
	return PostDetail{
		ID:            p.ID,
		Hashtag:       p.Hashtag,
		Text:          p.Text,
		User:          toUserListItem(&p.User),
		MediaImage:    p.MediaImage,
		CreatedAt:     p.CreatedAt,
		CommentsCount: p.CommentsCount,
		LikesCount:    p.LikesCount,
		Liked:         p.Liked,
	}
}

func toCommentView(c *models.Comment) CommentView {
	return CommentView{
		ID:           c.ID,
		PostID:       c.PostID,
		UserUsername: c.User.Username,
		Text:         c.Text,
		CreatedAt:    c.CreatedAt,
	}
}

func toCommentViews(comments []models.Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, toCommentView(&comments[i]))
	}
	return views
}

func usernames(users []models.User) []string {
	names := make([]string, 0, len(users))
	for i := range users {
		names = append(names, users[i].Username)
	}
	return names
}
