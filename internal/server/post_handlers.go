package server

import (
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text       string `json:"text"`
		Hashtag    string `json:"hashtag"`
		MediaImage string `json:"media_image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:     currentUserID(c),
		Text:       req.Text,
		Hashtag:    req.Hashtag,
		MediaImage: req.MediaImage,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPostDetail(post))
}

// GetPosts handles GET /api/posts. Only posts by the caller or by users
// the caller follows are returned, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	filter := repository.PostFilter{
		Hashtag:  c.Query("hashtag"),
		Username: c.Query("username"),
	}

	posts, err := s.postService.ListPosts(c.Context(), currentUserID(c), filter, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toPostListItems(posts))
}

// GetPost handles GET /api/posts/:id. Posts outside the caller's
// visibility read as missing.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toPostDetail(post))
}

// UpdatePost handles PUT/PATCH /api/posts/:id. Owner or staff only.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text       *string `json:"text"`
		Hashtag    *string `json:"hashtag"`
		MediaImage *string `json:"media_image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:    currentUserID(c),
		PostID:     id,
		Text:       req.Text,
		Hashtag:    req.Hashtag,
		MediaImage: req.MediaImage,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toPostDetail(post))
}

// DeletePost handles DELETE /api/posts/:id. Owner or staff only.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddComment handles POST /api/posts/:id/add_comment.
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.postService.AddComment(c.Context(), id, currentUserID(c), req.Text)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCommentView(comment))
}

// LikePost handles POST /api/posts/:id/like, toggling the caller's like.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	liked, err := s.postService.ToggleLike(c.Context(), id, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"post_id": id,
		"liked":   liked,
	})
}

// GetComments handles GET /api/posts/:id/comments, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	comments, err := s.postService.ListComments(c.Context(), id, currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toCommentViews(comments))
}

// GetLikedPosts handles GET /api/liked-posts, the posts whose like toggle
// the caller currently has on.
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.LikedPosts(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toPostListItems(posts))
}
