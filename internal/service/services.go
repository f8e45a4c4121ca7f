package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/research-editing-site/internal/models"
	"github.com/research-editing-site/internal/repository"
	"github.com/research-editing-site/internal/validation"
)

// PostService defines the admin write surface for posts. Public reads go
// through content.Repository instead and never touch this interface.
type PostService interface {
	Create(ctx context.Context, in *models.PostInput) (*models.Post, []validation.ValidationError, error)
	Update(ctx context.Context, id string, in *models.PostInput) (*models.Post, []validation.ValidationError, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, page, limit int) ([]models.Post, error)
	Count(ctx context.Context) (int, error)
}

// UserService defines admin account management operations.
type UserService interface {
	Create(ctx context.Context, in *models.UserInput) (*models.User, []validation.ValidationError, error)
	Update(ctx context.Context, id string, in *models.UserInput) (*models.User, []validation.ValidationError, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
}

// SettingService defines key-value settings operations. The settings table
// is lazily seeded with defaults on first read when empty.
type SettingService interface {
	All(ctx context.Context) ([]models.Setting, error)
	Update(ctx context.Context, key, value string) (*models.Setting, []validation.ValidationError, error)
}

// AuthService verifies admin credentials for the login handler.
type AuthService interface {
	// Authenticate returns the matching active user, or (nil, nil) when
	// the credentials are wrong. Callers must not distinguish between an
	// unknown email and a bad password.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// Services holds all service interfaces
type Services struct {
	Post    PostService
	User    UserService
	Setting SettingService
	Auth    AuthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Post:    newPostService(repos.Post, log),
		User:    newUserService(repos.User, log),
		Setting: newSettingService(repos.Setting, log),
		Auth:    newAuthService(repos.User, log),
	}
}
