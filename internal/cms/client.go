// Package cms implements the remote headless-CMS backing store for blog
// content. It satisfies the same content.Source capability as the direct
// database reads, so pages cannot tell the stores apart.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/research-editing-site/internal/content"
)

// slugScanWindow bounds the fallback scan used when the API's exact-slug
// filter returns nothing. The remote store does not guarantee slugs are
// indexed or even populated, so we match recent published posts by their
// normalized slug instead. O(window) per miss; tolerable only while the
// corpus stays small.
const slugScanWindow = 200

// Client is a read-only client for the remote content API. Items are
// filtered by status and sorted by publish timestamp server-side; paging is
// offset/limit.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a content API client. An empty token disables the
// Authorization header.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// item is the remote API's post shape. Tags arrive as plain string labels;
// the normalizer synthesizes tag records from them.
type item struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Excerpt     string      `json:"excerpt"`
	CoverImage  string      `json:"cover_image"`
	Body        string      `json:"body"`
	Status      string      `json:"status"`
	PublishedAt string      `json:"published_at"`
	UpdatedAt   string      `json:"updated_at"`
	Author      *struct {
		ID     json.Number `json:"id"`
		Name   string      `json:"name"`
		Email  string      `json:"email"`
		Avatar string      `json:"avatar"`
		Bio    string      `json:"bio"`
	} `json:"author"`
	Tags []string `json:"tags"`
}

type listResponse struct {
	Items []item `json:"items"`
}

// LatestPosts returns up to limit published posts, newest first.
func (c *Client) LatestPosts(ctx context.Context, limit int) ([]content.RawPost, error) {
	items, err := c.listPosts(ctx, limit, 0, "")
	if err != nil {
		return nil, err
	}
	return toRawPosts(items), nil
}

// PostsPage returns the 1-based page of published posts.
func (c *Client) PostsPage(ctx context.Context, page, limit int) ([]content.RawPost, error) {
	if page < 1 {
		page = 1
	}
	items, err := c.listPosts(ctx, limit, (page-1)*limit, "")
	if err != nil {
		return nil, err
	}
	return toRawPosts(items), nil
}

// PostBySlug resolves a published post by slug. It first asks the API for
// an exact match; when that misses it scans a bounded window of recent
// published posts and compares normalized slugs, favoring the first (most
// recently updated) match.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*content.RawPost, error) {
	items, err := c.listPosts(ctx, 1, 0, slug)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		raw := toRawPost(items[0])
		return &raw, nil
	}

	items, err = c.listPosts(ctx, slugScanWindow, 0, "")
	if err != nil {
		return nil, err
	}
	want := content.Slugify(slug)
	for _, it := range items {
		raw := toRawPost(it)
		candidate := raw.Slug
		if candidate == "" {
			candidate = raw.Title
		}
		if content.Slugify(candidate) == want {
			return &raw, nil
		}
	}
	return nil, nil
}

func (c *Client) listPosts(ctx context.Context, limit, offset int, slug string) ([]item, error) {
	q := url.Values{}
	q.Set("status", "published")
	q.Set("sort", "-published_at")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	if slug != "" {
		q.Set("slug", slug)
	}

	var resp listResponse
	if err := c.get(ctx, "/api/posts?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("content api status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode content api response: %w", err)
	}
	return nil
}

func toRawPost(it item) content.RawPost {
	raw := content.RawPost{
		ID:          it.ID.String(),
		Title:       it.Title,
		Slug:        it.Slug,
		Excerpt:     it.Excerpt,
		CoverImage:  it.CoverImage,
		Content:     it.Body,
		Status:      it.Status,
		PublishedAt: it.PublishedAt,
		UpdatedAt:   it.UpdatedAt,
		TagNames:    it.Tags,
	}
	if it.Author != nil {
		raw.Author = &content.RawAuthor{
			ID:     it.Author.ID.String(),
			Name:   it.Author.Name,
			Email:  it.Author.Email,
			Avatar: it.Author.Avatar,
			Bio:    it.Author.Bio,
		}
	}
	return raw
}

func toRawPosts(items []item) []content.RawPost {
	out := make([]content.RawPost, 0, len(items))
	for _, it := range items {
		out = append(out, toRawPost(it))
	}
	return out
}
