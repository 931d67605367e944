// Package service contains the business logic between HTTP handlers and
// the repository layer.
package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/policy"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

type UpdateProfileInput struct {
	ActorID   uint
	UserID    uint
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
	Other     *string
	Image     *string
	Password  *string
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

// Register validates the input, hashes the password and creates the account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, models.NewValidationError("Email, username, and password are required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("first_name", in.FirstName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("last_name", in.LastName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("A user with this email already exists")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("A user with this username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:     in.Email,
		Username:  in.Username,
		Password:  string(hashed),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// ListUsers returns users matching the filter with follow counts attached.
func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range users {
		followers, following, err := s.followRepo.Counts(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].FollowersCount = followers
		users[i].FollowingCount = following
	}
	return users, nil
}

// GetUser returns a single user with follow counts attached.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	followers, following, err := s.followRepo.Counts(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FollowersCount = followers
	user.FollowingCount = following
	return user, nil
}

// Connections returns who the user follows and who follows them.
func (s *UserService) Connections(ctx context.Context, id uint) (following, followers []models.User, err error) {
	following, err = s.followRepo.Following(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	followers, err = s.followRepo.Followers(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return following, followers, nil
}

// UpdateProfile applies a partial update to a user's profile. Nil fields
// are left untouched; a new password is validated and re-hashed.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	actor, err := s.userRepo.GetByID(ctx, in.ActorID)
	if err != nil {
		return nil, err
	}
	if d := policy.CanEditProfile(actor, in.UserID); !d.Allowed {
		return nil, models.NewForbiddenError(d.Reason)
	}

	user, err := s.userRepo.GetByIDForUpdate(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByUsername(ctx, *in.Username); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != user.ID {
			return nil, models.NewValidationError("A user with this username already exists")
		}
		user.Username = *in.Username
	}
	if in.FirstName != nil {
		if err := validation.ValidateName("first_name", *in.FirstName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		if err := validation.ValidateName("last_name", *in.LastName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Other != nil {
		user.OtherDetails = *in.Other
	}
	if in.Image != nil {
		user.Image = UserImagePath(user.Username, *in.Image)
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Staff only.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if d := policy.CanAdministerUsers(actor); !d.Allowed {
		return models.NewForbiddenError(d.Reason)
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, targetID)
}
