package service

import (
	"context"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(posts *postRepoStub, comments *commentRepoStub, users *userRepoStub) *PostService {
	return NewPostService(posts, comments, users)
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and reloads", func(t *testing.T) {
		var created *models.Post
		posts := noopPostRepo()
		posts.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 10
			created = p
			return nil
		}
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "ann"}, nil
		}
		svc := newPostService(posts, noopCommentRepo(), users)

		post, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: "hello", Hashtag: "intro"})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "hello", created.Text)
		assert.Equal(t, uint(10), post.ID)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		svc := newPostService(noopPostRepo(), noopCommentRepo(), noopUserRepo())
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: ""})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("overlong text is rejected", func(t *testing.T) {
		svc := newPostService(noopPostRepo(), noopCommentRepo(), noopUserRepo())
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: strings.Repeat("x", 256)})
		assert.Error(t, err)
	})

	t.Run("media filename becomes a slugged path", func(t *testing.T) {
		var created *models.Post
		posts := noopPostRepo()
		posts.createFn = func(_ context.Context, p *models.Post) error {
			created = p
			return nil
		}
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "Ann Lee"}, nil
		}
		svc := newPostService(posts, noopCommentRepo(), users)

		_, err := svc.CreatePost(ctx, CreatePostInput{
			UserID: 1, Text: "hello", MediaImage: "My Photo.PNG",
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(created.MediaImage, "media/uploads/posts/ann-lee/my-photo-"))
		assert.True(t, strings.HasSuffix(created.MediaImage, ".PNG"))
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can update", func(t *testing.T) {
		stored := &models.Post{ID: 10, UserID: 1, Text: "old"}
		posts := noopPostRepo()
		posts.getVisibleByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) { return stored, nil }
		posts.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) { return stored, nil }
		svc := newPostService(posts, noopCommentRepo(), noopUserRepo())

		text := "new"
		post, err := svc.UpdatePost(ctx, UpdatePostInput{ActorID: 1, PostID: 10, Text: &text})
		require.NoError(t, err)
		assert.Equal(t, "new", post.Text)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		posts := noopPostRepo()
		posts.getVisibleByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		}
		svc := newPostService(posts, noopCommentRepo(), noopUserRepo())

		text := "hijack"
		_, err := svc.UpdatePost(ctx, UpdatePostInput{ActorID: 2, PostID: 10, Text: &text})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("staff can update anyone's post", func(t *testing.T) {
		stored := &models.Post{ID: 10, UserID: 1, Text: "old"}
		posts := noopPostRepo()
		posts.getVisibleByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) { return stored, nil }
		posts.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) { return stored, nil }
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsStaff: true}, nil
		}
		svc := newPostService(posts, noopCommentRepo(), users)

		text := "moderated"
		post, err := svc.UpdatePost(ctx, UpdatePostInput{ActorID: 9, PostID: 10, Text: &text})
		require.NoError(t, err)
		assert.Equal(t, "moderated", post.Text)
	})

	t.Run("invisible post reads as missing", func(t *testing.T) {
		posts := noopPostRepo()
		posts.getVisibleByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := newPostService(posts, noopCommentRepo(), noopUserRepo())

		text := "x"
		_, err := svc.UpdatePost(ctx, UpdatePostInput{ActorID: 1, PostID: 10, Text: &text})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can delete", func(t *testing.T) {
		deleted := uint(0)
		posts := noopPostRepo()
		posts.getVisibleByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		}
		posts.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}
		svc := newPostService(posts, noopCommentRepo(), noopUserRepo())

		require.NoError(t, svc.DeletePost(ctx, 1, 10))
		assert.Equal(t, uint(10), deleted)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		posts := noopPostRepo()
		posts.getVisibleByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		}
		svc := newPostService(posts, noopCommentRepo(), noopUserRepo())

		assert.Error(t, svc.DeletePost(ctx, 2, 10))
	})
}

func TestPostService_ToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("returns resulting state", func(t *testing.T) {
		state := false
		posts := noopPostRepo()
		posts.toggleLikeFn = func(_ context.Context, _, _ uint) (bool, error) {
			state = !state
			return state, nil
		}
		svc := newPostService(posts, noopCommentRepo(), noopUserRepo())

		liked, err := svc.ToggleLike(ctx, 10, 1)
		require.NoError(t, err)
		assert.True(t, liked)

		liked, err = svc.ToggleLike(ctx, 10, 1)
		require.NoError(t, err)
		assert.False(t, liked)
	})

	t.Run("invisible post cannot be liked", func(t *testing.T) {
		posts := noopPostRepo()
		posts.getVisibleByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		posts.toggleLikeFn = func(_ context.Context, _, _ uint) (bool, error) {
			t.Fatal("toggle should not be called")
			return false, nil
		}
		svc := newPostService(posts, noopCommentRepo(), noopUserRepo())

		_, err := svc.ToggleLike(ctx, 10, 1)
		assert.Error(t, err)
	})
}

func TestPostService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates comment with author attached", func(t *testing.T) {
		comments := noopCommentRepo()
		comments.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 5
			return nil
		}
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "ann"}, nil
		}
		svc := newPostService(noopPostRepo(), comments, users)

		comment, err := svc.AddComment(ctx, 10, 1, "nice post")
		require.NoError(t, err)
		assert.Equal(t, uint(5), comment.ID)
		assert.Equal(t, "nice post", comment.Text)
		assert.Equal(t, "ann", comment.User.Username)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		svc := newPostService(noopPostRepo(), noopCommentRepo(), noopUserRepo())
		_, err := svc.AddComment(ctx, 10, 1, "")
		assert.Error(t, err)
	})

	t.Run("invisible post cannot be commented on", func(t *testing.T) {
		posts := noopPostRepo()
		posts.getVisibleByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := newPostService(posts, noopCommentRepo(), noopUserRepo())

		_, err := svc.AddComment(ctx, 10, 1, "hello")
		assert.Error(t, err)
	})
}

func TestPostService_ListComments_ChecksVisibility(t *testing.T) {
	posts := noopPostRepo()
	posts.getVisibleByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	comments := noopCommentRepo()
	comments.listByPostFn = func(_ context.Context, _ uint, _, _ int) ([]models.Comment, error) {
		t.Fatal("comments should not be listed for an invisible post")
		return nil, nil
	}
	svc := newPostService(posts, comments, noopUserRepo())

	_, err := svc.ListComments(context.Background(), 10, 1, 20, 0)
	assert.Error(t, err)
}
