package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mardelta/portfolio-api/internal/model"
)

// BlogRepo encapsulates all database queries for blog posts.
type BlogRepo struct {
	db *sql.DB
}

// NewBlogRepo constructs a BlogRepo with the provided DB handle.
func NewBlogRepo(db *sql.DB) *BlogRepo {
	return &BlogRepo{db: db}
}

const blogColumns = "id, title, excerpt, content, category, tags, published_at, read_time, image, created_at, updated_at"

func scanBlogPost(row interface{ Scan(...any) error }) (*model.BlogPost, error) {
	var (
		p       model.BlogPost
		tagsRaw []byte
		image   sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Category,
		&tagsRaw, &p.PublishedAt, &p.ReadTime, &image, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(tagsRaw, &p.Tags); err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Image = image.String
	return &p, nil
}

// ListAll returns every blog post ordered by publish date descending. Newest
// ties break on creation time.
func (r *BlogRepo) ListAll(ctx context.Context) ([]model.BlogPost, error) {
	const q = "SELECT " + blogColumns + " FROM blog_posts ORDER BY published_at DESC, created_at DESC"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single post by id, returning ErrNotFound when absent.
func (r *BlogRepo) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	const q = "SELECT " + blogColumns + " FROM blog_posts WHERE id = ?"
	p, err := scanBlogPost(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new post. ID and timestamps are assigned here.
func (r *BlogRepo) Create(ctx context.Context, p *model.BlogPost) error {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	tags, err := marshalJSON(p.Tags)
	if err != nil {
		return err
	}
	const q = `INSERT INTO blog_posts
	           (id, title, excerpt, content, category, tags, published_at, read_time, image, created_at, updated_at)
	           VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	_, err = r.db.ExecContext(ctx, q, p.ID, p.Title, p.Excerpt, p.Content, p.Category,
		tags, p.PublishedAt, p.ReadTime, nullable(p.Image), p.CreatedAt, p.UpdatedAt)
	return err
}

// Update applies the non-nil fields of upd and returns the fresh record.
func (r *BlogRepo) Update(ctx context.Context, id string, upd model.BlogPostUpdate) (*model.BlogPost, error) {
	sets := []string{}
	args := []any{}
	appendSet := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Title != nil {
		appendSet("title", *upd.Title)
	}
	if upd.Excerpt != nil {
		appendSet("excerpt", *upd.Excerpt)
	}
	if upd.Content != nil {
		appendSet("content", *upd.Content)
	}
	if upd.Category != nil {
		appendSet("category", *upd.Category)
	}
	if upd.Tags != nil {
		tags, err := marshalJSON(*upd.Tags)
		if err != nil {
			return nil, err
		}
		appendSet("tags", tags)
	}
	if upd.PublishedAt != nil {
		appendSet("published_at", *upd.PublishedAt)
	}
	if upd.ReadTime != nil {
		appendSet("read_time", *upd.ReadTime)
	}
	if upd.Image != nil {
		appendSet("image", nullable(*upd.Image))
	}
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	appendSet("updated_at", time.Now().UTC())
	args = append(args, id)

	q := "UPDATE blog_posts SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	// RowsAffected cannot tell a missing row from a no-op update; Get settles
	// existence either way.
	return r.Get(ctx, id)
}

// Delete removes a post, returning ErrNotFound when nothing was deleted.
func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
