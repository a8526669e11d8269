package model

import "time"

// Comment is a blog post comment. ParentID is empty for top-level comments
// and references another comment of the same post for replies. DeletedAt is
// the soft-delete tombstone: the row stays so replies keep their anchor, and
// public rendering substitutes placeholder author/content.
type Comment struct {
	ID         string     `json:"id"` // comments.id (UUID)
	BlogPostID string     `json:"blog_post_id"`
	UserID     string     `json:"user_id"`
	ParentID   string     `json:"parent_id,omitempty"`
	Content    string     `json:"content"`
	UserName   string     `json:"user_name"`
	UserAvatar string     `json:"user_avatar,omitempty"`
	Deleted    bool       `json:"deleted"`
	DeletedAt  *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Replies    []*Comment `json:"replies,omitempty"`
}

// Redacted placeholder values shown for tombstoned comments.
const (
	DeletedCommentContent = "[deleted]"
	DeletedCommentAuthor  = "Deleted user"
)

// Redact replaces author and content of a tombstoned comment with
// placeholders. Replies are left untouched.
func (c *Comment) Redact() {
	c.Content = DeletedCommentContent
	c.UserName = DeletedCommentAuthor
	c.UserAvatar = ""
	c.UserID = ""
}
