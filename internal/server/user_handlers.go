package server

import (
	"ripple/internal/models"
	"ripple/internal/policy"
	"ripple/internal/repository"
	"ripple/internal/service"
	"ripple/internal/tasks"

	"github.com/gofiber/fiber/v2"
)

// profilePatch is the request body for profile updates. Pointer fields
// distinguish "absent" from "set to empty".
type profilePatch struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Other     *string `json:"other_details"`
	Image     *string `json:"image"`
	Password  *string `json:"password"`
}

// GetMe handles GET /api/me.
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toMeView(user))
}

// UpdateMe handles PATCH /api/me.
func (s *Server) UpdateMe(c *fiber.Ctx) error {
	var req profilePatch
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	uid := currentUserID(c)
	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		ActorID:   uid,
		UserID:    uid,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Other:     req.Other,
		Image:     req.Image,
		Password:  req.Password,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toMeView(user))
}

// GetUsers handles GET /api/users with optional username/first_name/
// last_name substring filters.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	filter := repository.UserFilter{
		Username:  c.Query("username"),
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
	}

	users, err := s.userService.ListUsers(c.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toUserListItems(users))
}

// CreateUser handles POST /api/users. Staff only; self-service signup
// goes through /register.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	if err := s.requireStaff(c); err != nil {
		return nil
	}

	var req struct {
		Email     string `json:"email"`
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	tasks.EnqueuePostJob(c.Context(), tasks.PostJob{UserID: user.ID})

	return c.Status(fiber.StatusCreated).JSON(toMeView(user))
}

// GetUser handles GET /api/users/:id.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	following, followers, err := s.userService.Connections(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toUserDetail(user, following, followers))
}

// UpdateUser handles PUT/PATCH /api/users/:id. Staff only; users change
// their own profile through /me.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	if err := s.requireStaff(c); err != nil {
		return nil
	}

	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req profilePatch
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		ActorID:   currentUserID(c),
		UserID:    id,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Other:     req.Other,
		Image:     req.Image,
		Password:  req.Password,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(toMeView(user))
}

// DeleteUser handles DELETE /api/users/:id. Staff only; cascades to all
// content the user owns or authored.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// FollowUser handles PATCH /api/users/:id/follow. Succeeds on every
// branch, including self-follow and an already-present edge.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.followService.Follow(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return s.respondFollowerCount(c, id)
}

// UnfollowUser handles PATCH /api/users/:id/unfollow. Idempotent.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return s.respondFollowerCount(c, id)
}

func (s *Server) respondFollowerCount(c *fiber.Ctx, targetID uint) error {
	followers, _, err := s.followRepo.Counts(c.Context(), targetID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":              targetID,
		"followers_count": followers,
	})
}

// requireStaff writes a 403 and returns errResponseWritten unless the
// caller is staff.
func (s *Server) requireStaff(c *fiber.Ctx) error {
	actor, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		_ = models.RespondWithAppError(c, err)
		return errResponseWritten
	}
	if d := policy.CanAdministerUsers(actor); !d.Allowed {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError(d.Reason))
		return errResponseWritten
	}
	return nil
}
