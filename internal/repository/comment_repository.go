package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mardelta/portfolio-api/internal/model"
)

// CommentRepo stores blog post comments. Deletion is a soft delete: a
// tombstone timestamp is set and the row is kept so reply threads stay
// anchored.
type CommentRepo struct {
	db *sql.DB
}

// NewCommentRepo constructs a CommentRepo with the provided DB handle.
func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// Create inserts a new comment leaf. The caller is responsible for verifying
// that the post exists and that any parent belongs to the same post.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	c.ID = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	const q = `INSERT INTO comments
	           (id, blog_post_id, user_id, parent_id, content, created_at, updated_at)
	           VALUES (?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.BlogPostID, c.UserID,
		nullable(c.ParentID), c.Content, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetByID fetches a single comment without author details.
func (r *CommentRepo) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	const q = `SELECT id, blog_post_id, user_id, parent_id, content, deleted_at, created_at, updated_at
	           FROM comments WHERE id = ?`
	var (
		c         model.Comment
		parentID  sql.NullString
		deletedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.BlogPostID, &c.UserID,
		&parentID, &c.Content, &deletedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.ParentID = parentID.String
	if deletedAt.Valid {
		t := deletedAt.Time
		c.DeletedAt = &t
		c.Deleted = true
	}
	return &c, nil
}

// ListByPost returns the comment tree for a post: top-level comments in
// creation order, each carrying its replies in creation order. Tombstoned
// comments are redacted but keep their position so replies stay reachable.
func (r *CommentRepo) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	const q = `SELECT c.id, c.blog_post_id, c.user_id, c.parent_id, c.content,
	                  c.deleted_at, c.created_at, c.updated_at, u.name, u.avatar_url
	           FROM comments c
	           JOIN user_profiles u ON u.id = c.user_id
	           WHERE c.blog_post_id = ?
	           ORDER BY c.created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[string]*model.Comment{}
	var ordered []*model.Comment
	for rows.Next() {
		var (
			c         model.Comment
			parentID  sql.NullString
			deletedAt sql.NullTime
			avatar    sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.BlogPostID, &c.UserID, &parentID, &c.Content,
			&deletedAt, &c.CreatedAt, &c.UpdatedAt, &c.UserName, &avatar); err != nil {
			return nil, err
		}
		c.ParentID = parentID.String
		c.UserAvatar = avatar.String
		if deletedAt.Valid {
			t := deletedAt.Time
			c.DeletedAt = &t
			c.Deleted = true
			c.Redact()
		}
		byID[c.ID] = &c
		ordered = append(ordered, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows arrive in creation order, so parents precede their replies and
	// subtree ordering falls out of a single pass.
	roots := []*model.Comment{}
	for _, c := range ordered {
		if c.ParentID == "" {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		} else {
			// Orphaned reply (parent row purged out of band); surface it at
			// the top level rather than dropping it.
			roots = append(roots, c)
		}
	}
	return roots, nil
}

// SoftDelete tombstones a comment. Only the comment's author or the admin may
// delete; others get ErrForbidden. Deleting an already tombstoned comment is
// a no-op.
func (r *CommentRepo) SoftDelete(ctx context.Context, id, actorUserID string, actorIsAdmin bool) error {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actorIsAdmin && c.UserID != actorUserID {
		return ErrForbidden
	}
	if c.Deleted {
		return nil
	}
	const q = "UPDATE comments SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL"
	_, err = r.db.ExecContext(ctx, q, time.Now().UTC(), id)
	return err
}
