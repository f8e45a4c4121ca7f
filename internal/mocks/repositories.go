package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/research-editing-site/internal/content"
	"github.com/research-editing-site/internal/models"
)

// MockPostRepository is an in-memory implementation of
// repository.PostRepository. Posts keep insertion order; tests insert
// newest first when ordering matters. Setting Err makes every method fail.
type MockPostRepository struct {
	Posts   []*models.Post
	Authors map[string]*models.User
	Err     error
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{Authors: make(map[string]*models.User)}
}

func (m *MockPostRepository) raw(p *models.Post, authorID string) content.RawPost {
	raw := content.RawPost{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		Content:     p.Content,
		Status:      p.Status,
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, t := range p.Tags {
		raw.Tags = append(raw.Tags, content.RawTag{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	if u, ok := m.Authors[authorID]; ok {
		raw.Author = &content.RawAuthor{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, Bio: u.Bio}
	}
	return raw
}

func (m *MockPostRepository) published() []content.RawPost {
	var out []content.RawPost
	for _, p := range m.Posts {
		if p.Status == models.StatusPublished {
			out = append(out, m.raw(p, ""))
		}
	}
	return out
}

func (m *MockPostRepository) LatestPosts(ctx context.Context, limit int) ([]content.RawPost, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	posts := m.published()
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (m *MockPostRepository) PostsPage(ctx context.Context, page, limit int) ([]content.RawPost, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	posts := m.published()
	offset := (page - 1) * limit
	if offset >= len(posts) {
		return []content.RawPost{}, nil
	}
	posts = posts[offset:]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (m *MockPostRepository) PostBySlug(ctx context.Context, slug string) (*content.RawPost, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Posts {
		if p.Slug == slug && p.Status == models.StatusPublished {
			raw := m.raw(p, "")
			return &raw, nil
		}
	}
	return nil, nil
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post, authorID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Posts = append(m.Posts, post)
	return nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post, authorID string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, p := range m.Posts {
		if p.ID == post.ID {
			m.Posts[i] = post
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, p := range m.Posts {
		if p.ID == id {
			m.Posts = append(m.Posts[:i], m.Posts[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*content.RawPost, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Posts {
		if p.ID == id {
			raw := m.raw(p, "")
			return &raw, nil
		}
	}
	return nil, nil
}

func (m *MockPostRepository) List(ctx context.Context, page, limit int) ([]content.RawPost, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []content.RawPost
	for _, p := range m.Posts {
		out = append(out, m.raw(p, ""))
	}
	offset := (page - 1) * limit
	if offset >= len(out) {
		return []content.RawPost{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockPostRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, p := range m.Posts {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int, error) {
	return len(m.Posts), m.Err
}

// MockUserRepository is an in-memory implementation of
// repository.UserRepository.
type MockUserRepository struct {
	Users map[string]*models.User
	Err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.User, 0, len(m.Users))
	for _, u := range m.Users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), m.Err
}

// MockSettingRepository is an in-memory implementation of
// repository.SettingRepository.
type MockSettingRepository struct {
	Settings    map[string]*models.Setting
	Err         error
	UpsertCalls int
}

func NewMockSettingRepository() *MockSettingRepository {
	return &MockSettingRepository{Settings: make(map[string]*models.Setting)}
}

func (m *MockSettingRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	m.UpsertCalls++
	if m.Err != nil {
		return m.Err
	}
	copied := *setting
	copied.UpdatedAt = time.Now()
	m.Settings[setting.Key] = &copied
	return nil
}

func (m *MockSettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Settings[key], nil
}

func (m *MockSettingRepository) List(ctx context.Context) ([]models.Setting, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Setting, 0, len(m.Settings))
	for _, s := range m.Settings {
		out = append(out, *s)
	}
	return out, nil
}

func (m *MockSettingRepository) Count(ctx context.Context) (int, error) {
	return len(m.Settings), m.Err
}
