package content_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/research-editing-site/internal/content"
	"github.com/research-editing-site/internal/mocks"
)

func seedSource() *mocks.MockContentSource {
	src := mocks.NewMockContentSource()
	// Newest update first, matching store ordering.
	src.Posts = []content.RawPost{
		{ID: "3", Title: "Third", Slug: "third", Status: "published", UpdatedAt: "2024-03-03T00:00:00Z"},
		{ID: "2", Title: "Second", Slug: "second", Status: "published", UpdatedAt: "2024-03-02T00:00:00Z"},
		{ID: "d", Title: "Hidden Draft", Slug: "hidden-draft", Status: "draft", UpdatedAt: "2024-03-02T12:00:00Z"},
		{ID: "1", Title: "First", Slug: "first", Status: "published", UpdatedAt: "2024-03-01T00:00:00Z"},
	}
	return src
}

func newRepo(src content.Source) *content.Repository {
	return content.NewRepository(src, zerolog.Nop())
}

func TestGetLatestPostsOrderingAndLimit(t *testing.T) {
	repo := newRepo(seedSource())

	posts := repo.GetLatestPosts(context.Background(), 2)
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].Slug != "third" || posts[1].Slug != "second" {
		t.Errorf("got order [%s, %s], want [third, second]", posts[0].Slug, posts[1].Slug)
	}
	for _, p := range posts {
		if !p.Published() {
			t.Errorf("post %s is not published", p.Slug)
		}
	}
}

func TestGetLatestPostsEmptyOnError(t *testing.T) {
	src := seedSource()
	src.Err = errors.New("connection refused")
	repo := newRepo(src)

	posts := repo.GetLatestPosts(context.Background(), 3)
	if posts == nil {
		t.Fatal("want empty slice, got nil")
	}
	if len(posts) != 0 {
		t.Errorf("got %d posts, want 0", len(posts))
	}
}

func TestGetPostsPage(t *testing.T) {
	repo := newRepo(seedSource())

	page1 := repo.GetPostsPage(context.Background(), 1, 2)
	if len(page1) != 2 || page1[0].Slug != "third" {
		t.Fatalf("page 1 = %+v", page1)
	}

	page2 := repo.GetPostsPage(context.Background(), 2, 2)
	if len(page2) != 1 || page2[0].Slug != "first" {
		t.Fatalf("page 2 = %+v", page2)
	}

	page9 := repo.GetPostsPage(context.Background(), 9, 2)
	if len(page9) != 0 {
		t.Errorf("past-the-end page returned %d posts", len(page9))
	}
}

func TestGetPostsPageClampsToFirstPage(t *testing.T) {
	repo := newRepo(seedSource())

	for _, page := range []int{0, -3} {
		posts := repo.GetPostsPage(context.Background(), page, 2)
		if len(posts) != 2 || posts[0].Slug != "third" {
			t.Errorf("page %d should clamp to page 1, got %+v", page, posts)
		}
	}
}

func TestGetPostsPageEmptyOnError(t *testing.T) {
	src := seedSource()
	src.Err = errors.New("query failed")
	repo := newRepo(src)

	posts := repo.GetPostsPage(context.Background(), 1, 10)
	if len(posts) != 0 {
		t.Errorf("got %d posts, want 0", len(posts))
	}
}

func TestGetPostBySlug(t *testing.T) {
	repo := newRepo(seedSource())

	post := repo.GetPostBySlug(context.Background(), "second")
	if post == nil {
		t.Fatal("want post, got nil")
	}
	if post.Title != "Second" {
		t.Errorf("Title = %q, want %q", post.Title, "Second")
	}
}

func TestGetPostBySlugDraftIsNotFound(t *testing.T) {
	repo := newRepo(seedSource())

	if post := repo.GetPostBySlug(context.Background(), "hidden-draft"); post != nil {
		t.Errorf("draft resolved through public path: %+v", post)
	}
}

func TestGetPostBySlugUnpublishedRawRecord(t *testing.T) {
	// Even if a source leaks an unpublished record, the repository hides it.
	src := mocks.NewMockContentSource()
	repo := newRepo(&leakySource{src: src})

	if post := repo.GetPostBySlug(context.Background(), "leaked"); post != nil {
		t.Errorf("unpublished record resolved: %+v", post)
	}
}

func TestGetPostBySlugNilOnError(t *testing.T) {
	src := seedSource()
	src.Err = errors.New("timeout")
	repo := newRepo(src)

	if post := repo.GetPostBySlug(context.Background(), "second"); post != nil {
		t.Errorf("want nil on source error, got %+v", post)
	}
}

// leakySource returns a draft record from PostBySlug, mimicking a remote
// store that does not filter by status server-side.
type leakySource struct {
	src *mocks.MockContentSource
}

func (s *leakySource) LatestPosts(ctx context.Context, limit int) ([]content.RawPost, error) {
	return s.src.LatestPosts(ctx, limit)
}

func (s *leakySource) PostsPage(ctx context.Context, page, limit int) ([]content.RawPost, error) {
	return s.src.PostsPage(ctx, page, limit)
}

func (s *leakySource) PostBySlug(ctx context.Context, slug string) (*content.RawPost, error) {
	return &content.RawPost{ID: "x", Title: "Leaked", Slug: slug, Status: "draft"}, nil
}
