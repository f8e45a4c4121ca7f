package content

import (
	"context"
)

// RawAuthor is the author reference as it arrives from a backing store.
// Stores disagree on which fields they populate; Normalize resolves a
// display name from Name, then Email, and drops the author entirely when
// neither is usable.
type RawAuthor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// RawTag is a linked tag reference from a backing store.
type RawTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RawPost is the raw content-source record before normalization. The two
// stores do not agree on shape: the database returns linked tag rows in
// Tags, while the remote CMS may return plain-string labels in TagNames.
// Every field except Title and ID is optional; Normalize substitutes
// defaults rather than failing.
type RawPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	CoverImage  string     `json:"cover_image"`
	PublishedAt string     `json:"published_at"`
	UpdatedAt   string     `json:"updated_at"`
	Status      string     `json:"status"`
	Content     string     `json:"content"`
	Author      *RawAuthor `json:"author"`
	Tags        []RawTag   `json:"tags"`
	TagNames    []string   `json:"tag_names"`
}

// Source is the capability a backing store must provide: published posts
// only, ordered by most-recent update first. Implementations may return
// errors freely; the Repository converts them to empty results, so a Source
// never needs its own degradation logic.
//
// Two implementations exist: the Postgres read path in internal/repository
// and the remote CMS client in internal/cms. The concrete source is chosen
// once at startup from configuration, never per call.
type Source interface {
	// LatestPosts returns up to limit published posts, newest update first.
	LatestPosts(ctx context.Context, limit int) ([]RawPost, error)

	// PostsPage returns the 1-based page of published posts at the given
	// page size, newest update first.
	PostsPage(ctx context.Context, page, limit int) ([]RawPost, error)

	// PostBySlug returns the published post with the exact slug, or
	// (nil, nil) when absent or unpublished.
	PostBySlug(ctx context.Context, slug string) (*RawPost, error)
}
