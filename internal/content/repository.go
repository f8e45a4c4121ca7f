package content

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/research-editing-site/internal/models"
)

// Repository is the read facade every public page goes through. It is
// polymorphic over the Source capability, normalizes raw records, and
// converts any source failure into an empty result: blog content is
// non-critical to the primary service offering, so the site degrades to
// "no posts" rather than erroring.
type Repository struct {
	source Source
	log    zerolog.Logger
}

// NewRepository creates a Repository over the given source. The source is
// chosen once at process startup; callers depend only on this facade.
func NewRepository(source Source, log zerolog.Logger) *Repository {
	return &Repository{
		source: source,
		log:    log.With().Str("component", "content").Logger(),
	}
}

// GetLatestPosts returns at most limit published posts, newest update
// first. A failing source yields an empty slice, never an error.
func (r *Repository) GetLatestPosts(ctx context.Context, limit int) []models.Post {
	if limit <= 0 {
		return []models.Post{}
	}

	raws, err := r.source.LatestPosts(ctx, limit)
	if err != nil {
		r.log.Warn().Err(err).Int("limit", limit).Msg("Latest posts query failed, degrading to empty")
		return []models.Post{}
	}

	posts := NormalizeAll(raws)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

// GetPostsPage returns the 1-based page of published posts at the given
// page size. Page values below 1 clamp to the first page.
func (r *Repository) GetPostsPage(ctx context.Context, page, limit int) []models.Post {
	if limit <= 0 {
		return []models.Post{}
	}
	if page < 1 {
		page = 1
	}

	raws, err := r.source.PostsPage(ctx, page, limit)
	if err != nil {
		r.log.Warn().Err(err).Int("page", page).Int("limit", limit).Msg("Posts page query failed, degrading to empty")
		return []models.Post{}
	}

	posts := NormalizeAll(raws)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

// GetPostBySlug returns the published post with the exact slug, or nil when
// the slug is absent, the post is unpublished, or the source fails. Callers
// treat nil as "render the not-found page".
func (r *Repository) GetPostBySlug(ctx context.Context, slug string) *models.Post {
	raw, err := r.source.PostBySlug(ctx, slug)
	if err != nil {
		r.log.Warn().Err(err).Str("slug", slug).Msg("Post lookup failed, degrading to not found")
		return nil
	}
	if raw == nil {
		return nil
	}

	post := Normalize(*raw)
	if !post.Published() {
		return nil
	}
	return &post
}
