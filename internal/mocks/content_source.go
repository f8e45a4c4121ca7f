package mocks

import (
	"context"

	"github.com/research-editing-site/internal/content"
)

// MockContentSource is an in-memory implementation of content.Source.
// Posts are returned in the order they were added; tests add them newest
// first to mimic the stores' update-recency ordering. Setting Err makes
// every method fail, for exercising the Repository's degradation policy.
type MockContentSource struct {
	Posts []content.RawPost
	Err   error

	LatestCalls int
	PageCalls   int
	SlugCalls   int
}

func NewMockContentSource() *MockContentSource {
	return &MockContentSource{}
}

func (m *MockContentSource) published() []content.RawPost {
	out := make([]content.RawPost, 0, len(m.Posts))
	for _, p := range m.Posts {
		if p.Status == "published" {
			out = append(out, p)
		}
	}
	return out
}

func (m *MockContentSource) LatestPosts(ctx context.Context, limit int) ([]content.RawPost, error) {
	m.LatestCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	posts := m.published()
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (m *MockContentSource) PostsPage(ctx context.Context, page, limit int) ([]content.RawPost, error) {
	m.PageCalls++
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

func (m *MockContentSource) PostBySlug(ctx context.Context, slug string) (*content.RawPost, error) {
	m.SlugCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Posts {
		if m.Posts[i].Slug == slug && m.Posts[i].Status == "published" {
			p := m.Posts[i]
			return &p, nil
		}
	}
	return nil, nil
}
