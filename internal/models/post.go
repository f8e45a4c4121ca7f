package models

// Post statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidStatuses defines allowed post statuses
var ValidStatuses = map[string]bool{
	StatusDraft:     true,
	StatusPublished: true,
}

// Author is the display reference attached to a post. A post may render
// without one; callers must tolerate a nil Author.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
}

// Tag is a labelled post category. Rendered as an unordered set of pills;
// duplicates are kept as-is.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Post is the canonical, store-agnostic post shape every page consumes.
// It is produced by content.Normalize from whichever backing store is
// configured; pages never see raw store records.
//
// Timestamps are ISO-8601 strings copied verbatim from the source record,
// with no timezone conversion. Content is untrusted HTML and must pass
// through content.Sanitize before it reaches a template.
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Excerpt     string  `json:"excerpt,omitempty"`
	CoverImage  string  `json:"cover_image,omitempty"`
	PublishedAt string  `json:"published_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
	Status      string  `json:"status"`
	Content     string  `json:"content,omitempty"`
	Author      *Author `json:"author"`
	Tags        []Tag   `json:"tags"`
}

// Published reports whether the post is externally visible. Drafts and any
// unknown extension status resolve as not-found through public read paths.
func (p *Post) Published() bool {
	return p.Status == StatusPublished
}

// PostInput is the admin create/update payload for a post.
type PostInput struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	CoverImage string   `json:"cover_image"`
	Content    string   `json:"content"`
	Status     string   `json:"status"`
	AuthorID   string   `json:"author_id"`
	Tags       []string `json:"tags"`
}
