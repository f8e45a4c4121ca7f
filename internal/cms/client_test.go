package cms_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/research-editing-site/internal/cms"
)

type apiPost struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Status      string   `json:"status"`
	Body        string   `json:"body"`
	PublishedAt string   `json:"published_at"`
	UpdatedAt   string   `json:"updated_at"`
	Tags        []string `json:"tags,omitempty"`
}

// fakeAPI serves /api/posts the way the remote CMS does: published filter,
// publish-timestamp sort, offset/limit paging, exact slug filter.
func fakeAPI(t *testing.T, posts []apiPost) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("status") != "published" {
			t.Errorf("missing status=published filter, got %q", q.Get("status"))
		}
		if q.Get("sort") != "-published_at" {
			t.Errorf("missing publish-timestamp sort, got %q", q.Get("sort"))
		}

		matched := make([]apiPost, 0, len(posts))
		for _, p := range posts {
			if p.Status != "published" {
				continue
			}
			if slug := q.Get("slug"); slug != "" && p.Slug != slug {
				continue
			}
			matched = append(matched, p)
		}

		offset, _ := atoi(q.Get("offset"))
		limit, _ := atoi(q.Get("limit"))
		if offset > len(matched) {
			offset = len(matched)
		}
		matched = matched[offset:]
		if limit > 0 && len(matched) > limit {
			matched = matched[:limit]
		}

		json.NewEncoder(w).Encode(map[string]any{"items": matched})
	}))
}

func atoi(s string) (int, error) {
	var n int
	err := json.Unmarshal([]byte(s), &n)
	return n, err
}

func seedPosts() []apiPost {
	return []apiPost{
		{ID: 3, Title: "Third Post", Slug: "third-post", Status: "published", Body: "<p>c</p>", PublishedAt: "2024-03-03T00:00:00Z", UpdatedAt: "2024-03-03T00:00:00Z", Tags: []string{"Editing"}},
		{ID: 2, Title: "Second Post", Slug: "second-post", Status: "published", PublishedAt: "2024-03-02T00:00:00Z", UpdatedAt: "2024-03-02T00:00:00Z"},
		{ID: 9, Title: "Draft Post", Slug: "draft-post", Status: "draft"},
		{ID: 1, Title: "First Post", Slug: "first-post", Status: "published", PublishedAt: "2024-03-01T00:00:00Z", UpdatedAt: "2024-03-01T00:00:00Z"},
	}
}

func TestLatestPosts(t *testing.T) {
	srv := fakeAPI(t, seedPosts())
	defer srv.Close()

	client := cms.NewClient(srv.URL, "")
	posts, err := client.LatestPosts(context.Background(), 2)
	if err != nil {
		t.Fatalf("LatestPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].Slug != "third-post" || posts[1].Slug != "second-post" {
		t.Errorf("got order [%s, %s]", posts[0].Slug, posts[1].Slug)
	}
	if posts[0].ID != "3" {
		t.Errorf("numeric id should stringify, got %q", posts[0].ID)
	}
	if len(posts[0].TagNames) != 1 || posts[0].TagNames[0] != "Editing" {
		t.Errorf("plain-string tags should land in TagNames, got %+v", posts[0].TagNames)
	}
}

func TestPostsPage(t *testing.T) {
	srv := fakeAPI(t, seedPosts())
	defer srv.Close()

	client := cms.NewClient(srv.URL, "")
	posts, err := client.PostsPage(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("PostsPage failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "first-post" {
		t.Fatalf("page 2 = %+v", posts)
	}
}

func TestPostBySlugExactMatch(t *testing.T) {
	srv := fakeAPI(t, seedPosts())
	defer srv.Close()

	client := cms.NewClient(srv.URL, "")
	post, err := client.PostBySlug(context.Background(), "second-post")
	if err != nil {
		t.Fatalf("PostBySlug failed: %v", err)
	}
	if post == nil || post.Title != "Second Post" {
		t.Fatalf("got %+v, want Second Post", post)
	}
}

func TestPostBySlugWindowScanFallback(t *testing.T) {
	// The record's slug field is empty upstream, so the exact filter
	// misses; the client must find it by normalized title in the window.
	posts := []apiPost{
		{ID: 7, Title: "Désign, Calm! Interfaces", Status: "published", UpdatedAt: "2024-03-05T00:00:00Z"},
	}
	srv := fakeAPI(t, posts)
	defer srv.Close()

	client := cms.NewClient(srv.URL, "")
	post, err := client.PostBySlug(context.Background(), "design-calm-interfaces")
	if err != nil {
		t.Fatalf("PostBySlug failed: %v", err)
	}
	if post == nil {
		t.Fatal("window scan should have matched by normalized title")
	}
	if post.ID != "7" {
		t.Errorf("ID = %q, want 7", post.ID)
	}
}

func TestPostBySlugNotFound(t *testing.T) {
	srv := fakeAPI(t, seedPosts())
	defer srv.Close()

	client := cms.NewClient(srv.URL, "")
	post, err := client.PostBySlug(context.Background(), "no-such-post")
	if err != nil {
		t.Fatalf("PostBySlug failed: %v", err)
	}
	if post != nil {
		t.Errorf("got %+v, want nil", post)
	}
}

func TestDraftsNeverReturned(t *testing.T) {
	srv := fakeAPI(t, seedPosts())
	defer srv.Close()

	client := cms.NewClient(srv.URL, "")
	post, err := client.PostBySlug(context.Background(), "draft-post")
	if err != nil {
		t.Fatalf("PostBySlug failed: %v", err)
	}
	if post != nil {
		t.Errorf("draft leaked through the API client: %+v", post)
	}
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"items": []apiPost{}})
	}))
	defer srv.Close()

	client := cms.NewClient(srv.URL, "secret-token")
	if _, err := client.LatestPosts(context.Background(), 1); err != nil {
		t.Fatalf("LatestPosts failed: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := cms.NewClient(srv.URL, "")
	if _, err := client.LatestPosts(context.Background(), 5); err == nil {
		t.Fatal("want error from 500 response; degradation is the repository's job")
	}
}
