package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/research-editing-site/internal/models"
	"github.com/research-editing-site/internal/repository"
	"github.com/research-editing-site/internal/validation"
)

type userService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

func newUserService(users repository.UserRepository, log zerolog.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With().Str("service", "user").Logger(),
	}
}

func (s *userService) Create(ctx context.Context, in *models.UserInput) (*models.User, []validation.ValidationError, error) {
	if errs := validation.ValidateUserInput(in, true); len(errs) > 0 {
		return nil, errs, nil
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, []validation.ValidationError{{Field: "email", Message: "email already in use", Value: in.Email}}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = "editor"
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Avatar:       in.Avatar,
		Bio:          in.Bio,
		Role:         role,
		Active:       active,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User created")
	return user, nil, nil
}

// Update rewrites an account; an empty password keeps the current hash.
// Returns (nil, nil, nil) when the user does not exist.
func (s *userService) Update(ctx context.Context, id string, in *models.UserInput) (*models.User, []validation.ValidationError, error) {
	if errs := validation.ValidateUserInput(in, false); len(errs) > 0 {
		return nil, errs, nil
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, nil, nil
	}

	user.Email = in.Email
	user.Name = in.Name
	user.Avatar = in.Avatar
	user.Bio = in.Bio
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info().Str("user_id", id).Msg("User updated")
	return user, nil, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("User deleted")
	return nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Count(ctx context.Context) (int, error) {
	return s.users.Count(ctx)
}
