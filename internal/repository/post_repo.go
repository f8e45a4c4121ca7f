package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/research-editing-site/internal/content"
	"github.com/research-editing-site/internal/database"
	"github.com/research-editing-site/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

const rawPostColumns = `
	p.id, p.title, p.slug, p.excerpt, p.cover_image, p.content, p.status,
	p.published_at, p.updated_at,
	u.id, u.name, u.email, u.avatar, u.bio
`

// LatestPosts returns published posts ordered by most-recent update first.
func (r *postRepo) LatestPosts(ctx context.Context, limit int) ([]content.RawPost, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.status = 'published'
		ORDER BY p.updated_at DESC
		LIMIT $1
	`, rawPostColumns)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("latest posts: %w", err)
	}
	defer rows.Close()

	return r.collectRawPosts(ctx, rows)
}

// PostsPage returns the 1-based page of published posts.
func (r *postRepo) PostsPage(ctx context.Context, page, limit int) ([]content.RawPost, error) {
	if page < 1 {
		page = 1
	}
	query := fmt.Sprintf(`
		SELECT %s FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.status = 'published'
		ORDER BY p.updated_at DESC
		LIMIT $1 OFFSET $2
	`, rawPostColumns)

	rows, err := r.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("posts page: %w", err)
	}
	defer rows.Close()

	return r.collectRawPosts(ctx, rows)
}

// PostBySlug returns the published post with the exact slug, or (nil, nil)
// when absent or unpublished. Duplicate published slugs are prevented by a
// partial unique index, but the query still favors the most recent update.
func (r *postRepo) PostBySlug(ctx context.Context, slug string) (*content.RawPost, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1 AND p.status = 'published'
		ORDER BY p.updated_at DESC
		LIMIT 1
	`, rawPostColumns)

	rows, err := r.db.QueryContext(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("post by slug: %w", err)
	}
	defer rows.Close()

	posts, err := r.collectRawPosts(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// GetByID retrieves a post in any status, for the admin surface.
func (r *postRepo) GetByID(ctx context.Context, id string) (*content.RawPost, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, rawPostColumns)

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	defer rows.Close()

	posts, err := r.collectRawPosts(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// List retrieves posts in any status for the admin surface, newest first.
func (r *postRepo) List(ctx context.Context, page, limit int) ([]content.RawPost, error) {
	if page < 1 {
		page = 1
	}
	query := fmt.Sprintf(`
		SELECT %s FROM posts p
		LEFT JOIN users u ON u.id = p.author_id
		ORDER BY p.updated_at DESC
		LIMIT $1 OFFSET $2
	`, rawPostColumns)

	rows, err := r.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	return r.collectRawPosts(ctx, rows)
}

// Create inserts a new post and its tag links in one transaction.
func (r *postRepo) Create(ctx context.Context, post *models.Post, authorID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var publishedAt *string
	if post.PublishedAt != "" {
		publishedAt = &post.PublishedAt
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO posts (id, title, slug, excerpt, cover_image, content, status, author_id, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid, $9, now(), now())
	`, post.ID, post.Title, post.Slug, post.Excerpt, post.CoverImage, post.Content, post.Status, authorID, publishedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	if err := r.replaceTags(ctx, tx, post.ID, post.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// Update rewrites a post and its tag links in one transaction.
func (r *postRepo) Update(ctx context.Context, post *models.Post, authorID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var publishedAt *string
	if post.PublishedAt != "" {
		publishedAt = &post.PublishedAt
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE posts
		SET title = $2, slug = $3, excerpt = $4, cover_image = $5, content = $6,
		    status = $7, author_id = NULLIF($8, '')::uuid, published_at = $9, updated_at = now()
		WHERE id = $1
	`, post.ID, post.Title, post.Slug, post.Excerpt, post.CoverImage, post.Content, post.Status, authorID, publishedAt)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if err := r.replaceTags(ctx, tx, post.ID, post.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a post; tag links cascade.
func (r *postRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SlugExists checks whether another post already uses the slug.
func (r *postRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1 AND id::text <> $2)",
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// Count returns the total number of posts in any status.
func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

// replaceTags rewrites a post's tag links, creating tags by slug as needed
// and preserving insertion order via the position column.
func (r *postRepo) replaceTags(ctx context.Context, tx *sql.Tx, postID string, tags []models.Tag) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM post_tags WHERE post_id = $1", postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}

	for i, tag := range tags {
		tagID := tag.ID
		if tagID == "" {
			tagID = uuid.New().String()
		}
		var id string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO tags (id, name, slug) VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, tagID, tag.Name, tag.Slug).Scan(&id)
		if err != nil {
			return fmt.Errorf("upsert tag: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_id, position) VALUES ($1, $2, $3)
			ON CONFLICT (post_id, tag_id) DO NOTHING
		`, postID, id, i)
		if err != nil {
			return fmt.Errorf("link tag: %w", err)
		}
	}
	return nil
}

// collectRawPosts scans post rows and attaches their tag rows with a single
// follow-up query.
func (r *postRepo) collectRawPosts(ctx context.Context, rows *sql.Rows) ([]content.RawPost, error) {
	var posts []content.RawPost
	var ids []string

	for rows.Next() {
		var p content.RawPost
		var publishedAt, updatedAt sql.NullTime
		var authorID, authorName, authorEmail, authorAvatar, authorBio sql.NullString

		err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.CoverImage, &p.Content, &p.Status,
			&publishedAt, &updatedAt,
			&authorID, &authorName, &authorEmail, &authorAvatar, &authorBio,
		)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}

		if publishedAt.Valid {
			p.PublishedAt = publishedAt.Time.Format(time.RFC3339)
		}
		if updatedAt.Valid {
			p.UpdatedAt = updatedAt.Time.Format(time.RFC3339)
		}
		if authorID.Valid {
			p.Author = &content.RawAuthor{
				ID:     authorID.String,
				Name:   authorName.String,
				Email:  authorEmail.String,
				Avatar: authorAvatar.String,
				Bio:    authorBio.String,
			}
		}

		posts = append(posts, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	if len(posts) == 0 {
		return []content.RawPost{}, nil
	}

	tagsByPost, err := r.tagsForPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Tags = tagsByPost[posts[i].ID]
	}

	return posts, nil
}

func (r *postRepo) tagsForPosts(ctx context.Context, postIDs []string) (map[string][]content.RawTag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY pt.post_id, pt.position
	`, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("post tags: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]content.RawTag)
	for rows.Next() {
		var postID string
		var tag content.RawTag
		if err := rows.Scan(&postID, &tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out[postID] = append(out[postID], tag)
	}
	return out, rows.Err()
}
