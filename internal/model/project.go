package model

import "time"

// Project represents a portfolio project entry.
type Project struct {
	ID          string    `json:"id"` // projects.id (UUID)
	Title       string    `json:"title"`
	Description string    `json:"description"` // limited rich text
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"` // projects.tags (JSON)
	Image       string    `json:"image,omitempty"`
	DateLabel   string    `json:"date_label,omitempty"` // free-form label like "2024"
	GitHub      string    `json:"github,omitempty"`
	Demo        string    `json:"demo,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectUpdate carries a partial update. Nil fields are left untouched.
type ProjectUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Tags        *[]string
	Image       *string
	DateLabel   *string
	GitHub      *string
	Demo        *string
}
