package content

import (
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"github.com/research-editing-site/internal/models"
)

// fallbackSlug is the last-resort slug when a record carries no usable
// slug, title, or id.
const fallbackSlug = "post"

// Normalize maps a raw content-source record into the canonical Post shape.
// It is a pure function of its input and never fails: malformed optional
// fields degrade to nil/empty values, and a missing slug is synthesized from
// the title, the id, or a literal fallback, in that order.
func Normalize(raw RawPost) models.Post {
	return models.Post{
		ID:          raw.ID,
		Title:       raw.Title,
		Slug:        resolveSlug(raw),
		Excerpt:     raw.Excerpt,
		CoverImage:  raw.CoverImage,
		PublishedAt: raw.PublishedAt,
		UpdatedAt:   raw.UpdatedAt,
		Status:      raw.Status,
		Content:     raw.Content,
		Author:      resolveAuthor(raw.Author),
		Tags:        resolveTags(raw),
	}
}

// NormalizeAll maps a slice of raw records, preserving order.
func NormalizeAll(raws []RawPost) []models.Post {
	posts := make([]models.Post, 0, len(raws))
	for _, raw := range raws {
		posts = append(posts, Normalize(raw))
	}
	return posts
}

// Slugify derives a URL-safe slug: lowercase, diacritics stripped,
// whitespace and non-word runs collapsed to single hyphens, leading and
// trailing hyphens trimmed.
func Slugify(s string) string {
	return slug.Make(s)
}

func resolveSlug(raw RawPost) string {
	if s := strings.TrimSpace(raw.Slug); s != "" {
		return s
	}
	if s := Slugify(raw.Title); s != "" {
		return s
	}
	if s := strings.TrimSpace(raw.ID); s != "" {
		return s
	}
	return fallbackSlug
}

func resolveAuthor(raw *RawAuthor) *models.Author {
	if raw == nil {
		return nil
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = strings.TrimSpace(raw.Email)
	}
	if name == "" {
		return nil
	}

	return &models.Author{
		ID:     raw.ID,
		Name:   name,
		Avatar: raw.Avatar,
		Bio:    raw.Bio,
	}
}

// resolveTags extracts linked tag references when the store provides them,
// and synthesizes tags from plain-string labels otherwise. Entries with no
// usable name are dropped silently; duplicates are kept.
func resolveTags(raw RawPost) []models.Tag {
	tags := make([]models.Tag, 0, len(raw.Tags)+len(raw.TagNames))

	for _, t := range raw.Tags {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			continue
		}
		s := strings.TrimSpace(t.Slug)
		if s == "" {
			s = Slugify(name)
		}
		tags = append(tags, models.Tag{ID: t.ID, Name: name, Slug: s})
	}

	for i, label := range raw.TagNames {
		name := strings.TrimSpace(label)
		if name == "" {
			continue
		}
		tags = append(tags, models.Tag{
			ID:   strconv.Itoa(i),
			Name: name,
			Slug: Slugify(name),
		})
	}

	return tags
}
