package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/research-editing-site/internal/content"
	"github.com/research-editing-site/internal/models"
	"github.com/research-editing-site/internal/repository"
	"github.com/research-editing-site/internal/validation"
)

type postService struct {
	posts repository.PostRepository
	log   zerolog.Logger
}

func newPostService(posts repository.PostRepository, log zerolog.Logger) PostService {
	return &postService{
		posts: posts,
		log:   log.With().Str("service", "post").Logger(),
	}
}

// Create validates the payload, derives a slug from the title when none is
// given, and rejects slugs already in use by another post.
func (s *postService) Create(ctx context.Context, in *models.PostInput) (*models.Post, []validation.ValidationError, error) {
	if errs := validation.ValidatePostInput(in); len(errs) > 0 {
		return nil, errs, nil
	}

	post := s.fromInput(uuid.New().String(), in)

	taken, err := s.posts.SlugExists(ctx, post.Slug, post.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, []validation.ValidationError{{Field: "slug", Message: "slug already in use", Value: post.Slug}}, nil
	}

	if err := s.posts.Create(ctx, post, in.AuthorID); err != nil {
		return nil, nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("slug", post.Slug).Msg("Post created")
	return post, nil, nil
}

// Update rewrites an existing post. Returns (nil, nil, nil) when the post
// does not exist.
func (s *postService) Update(ctx context.Context, id string, in *models.PostInput) (*models.Post, []validation.ValidationError, error) {
	if errs := validation.ValidatePostInput(in); len(errs) > 0 {
		return nil, errs, nil
	}

	existing, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load post: %w", err)
	}
	if existing == nil {
		return nil, nil, nil
	}

	post := s.fromInput(id, in)
	if in.Status == models.StatusPublished && existing.PublishedAt != "" {
		post.PublishedAt = existing.PublishedAt
	}

	taken, err := s.posts.SlugExists(ctx, post.Slug, id)
	if err != nil {
		return nil, nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, []validation.ValidationError{{Field: "slug", Message: "slug already in use", Value: post.Slug}}, nil
	}

	if err := s.posts.Update(ctx, post, in.AuthorID); err != nil {
		return nil, nil, fmt.Errorf("update post: %w", err)
	}

	s.log.Info().Str("post_id", id).Str("slug", post.Slug).Msg("Post updated")
	return post, nil, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("post_id", id).Msg("Post deleted")
	return nil
}

// Get loads a post in any status for the admin editor.
func (s *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	raw, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	post := content.Normalize(*raw)
	return &post, nil
}

// List pages through posts in any status, drafts included.
func (s *postService) List(ctx context.Context, page, limit int) ([]models.Post, error) {
	raws, err := s.posts.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return content.NormalizeAll(raws), nil
}

// Count returns the number of posts in any status.
func (s *postService) Count(ctx context.Context) (int, error) {
	return s.posts.Count(ctx)
}

// fromInput builds the stored post shape: slug falls back to the slugified
// title, status defaults to draft, and first publication stamps
// published_at.
func (s *postService) fromInput(id string, in *models.PostInput) *models.Post {
	slug := in.Slug
	if slug == "" {
		slug = content.Slugify(in.Title)
	}

	status := in.Status
	if status == "" {
		status = models.StatusDraft
	}

	tags := make([]models.Tag, 0, len(in.Tags))
	for _, name := range in.Tags {
		if name == "" {
			continue
		}
		tags = append(tags, models.Tag{Name: name, Slug: content.Slugify(name)})
	}

	post := &models.Post{
		ID:         id,
		Title:      in.Title,
		Slug:       slug,
		Excerpt:    in.Excerpt,
		CoverImage: in.CoverImage,
		Content:    in.Content,
		Status:     status,
		Tags:       tags,
	}
	if status == models.StatusPublished {
		post.PublishedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return post
}
