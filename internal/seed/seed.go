package seed

import (
	"fmt"
	"log"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Run populates the database with a connected demo data set: users, a
// follow graph, posts, comments and like toggles.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = opts.NumUsers * 3
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("clean failed: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users (password: password123)", len(users))

	// Each user follows a handful of others
	edges := 0
	for _, follower := range users {
		for i := 0; i < 3; i++ {
			followee := users[f.rand.Intn(len(users))]
			if follower.ID == followee.ID {
				continue
			}
			err := f.CreateFollow(follower, followee)
			if err == nil {
				edges++
			}
			// Duplicate edges violate the unique index; skip them.
		}
	}
	log.Printf("Seeded %d follow edges", edges)

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		owner := users[f.rand.Intn(len(users))]
		post, err := f.CreatePost(owner)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))

	comments, likes := 0, 0
	for _, post := range posts {
		for i := 0; i < f.rand.Intn(4); i++ {
			author := users[f.rand.Intn(len(users))]
			if _, err := f.CreateComment(post, author); err == nil {
				comments++
			}
		}
		seen := map[uint]bool{}
		for i := 0; i < f.rand.Intn(5); i++ {
			liker := users[f.rand.Intn(len(users))]
			if seen[liker.ID] {
				continue
			}
			seen[liker.ID] = true
			if _, err := f.CreateLike(post, liker); err == nil {
				likes++
			}
		}
	}
	log.Printf("Seeded %d comments and %d like toggles", comments, likes)

	return nil
}

// Clean removes all seeded domain data in dependency order.
func Clean(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Like{}, &models.Comment{}, &models.Post{},
		&models.Follow{}, &models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
