package model

import "time"

// BlogPost represents a published article on the portfolio blog. Tags are
// stored as a JSON column in MySQL. PublishedAt carries only a calendar date
// ("2006-01-02") because the frontend renders it as a label; CreatedAt and
// UpdatedAt are full UTC timestamps maintained by the repository.
type BlogPost struct {
	ID          string    `json:"id"`           // blog_posts.id (UUID)
	Title       string    `json:"title"`        // blog_posts.title
	Excerpt     string    `json:"excerpt"`      // blog_posts.excerpt
	Content     string    `json:"content"`      // blog_posts.content (limited rich text)
	Category    string    `json:"category"`     // blog_posts.category
	Tags        []string  `json:"tags"`         // blog_posts.tags (JSON)
	PublishedAt string    `json:"published_at"` // blog_posts.published_at (date)
	ReadTime    string    `json:"read_time"`    // blog_posts.read_time ("5 min")
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BlogPostUpdate carries a partial update. Nil fields are left untouched.
type BlogPostUpdate struct {
	Title       *string
	Excerpt     *string
	Content     *string
	Category    *string
	Tags        *[]string
	PublishedAt *string
	ReadTime    *string
	Image       *string
}
