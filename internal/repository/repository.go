package repository

import (
	"context"

	"github.com/research-editing-site/internal/content"
	"github.com/research-editing-site/internal/database"
	"github.com/research-editing-site/internal/models"
)

// PostRepository defines post data operations. The published read methods
// double as the database-backed content.Source; admin surfaces use the
// remaining CRUD methods and see drafts too.
type PostRepository interface {
	content.Source

	Create(ctx context.Context, post *models.Post, authorID string) error
	Update(ctx context.Context, post *models.Post, authorID string) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*content.RawPost, error)
	List(ctx context.Context, page, limit int) ([]content.RawPost, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository defines admin account data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
}

// SettingRepository defines key-value setting operations. Values are plain
// strings regardless of logical type.
type SettingRepository interface {
	Upsert(ctx context.Context, setting *models.Setting) error
	Get(ctx context.Context, key string) (*models.Setting, error)
	List(ctx context.Context) ([]models.Setting, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post    PostRepository
	User    UserRepository
	Setting SettingRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post:    NewPostRepo(db),
		User:    NewUserRepo(db),
		Setting: NewSettingRepo(db),
	}
}
