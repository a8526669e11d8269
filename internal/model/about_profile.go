package model

import "time"

// SocialLinks groups the outbound profile links shown on the about page.
// Persisted as a JSON column.
type SocialLinks struct {
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	HackerOne string `json:"hackerone,omitempty"`
}

// DogProfile is the optional companion profile rendered alongside the owner.
// Persisted as a JSON column.
type DogProfile struct {
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Bio    string   `json:"bio"`
	Image  string   `json:"image,omitempty"`
	Skills []string `json:"skills"`
}

// AboutProfile is the single about-page record. The table holds at most one
// row; creation is rejected when a profile already exists.
type AboutProfile struct {
	ID           string      `json:"id"` // about_profiles.id (UUID)
	Name         string      `json:"name"`
	Title        string      `json:"title"`
	Bio          string      `json:"bio"` // limited rich text
	Email        string      `json:"email"`
	Location     string      `json:"location"`
	Skills       []string    `json:"skills"` // JSON column
	Social       SocialLinks `json:"social"` // JSON column
	Dog          *DogProfile `json:"dog,omitempty"`
	ProfileImage string      `json:"profile_image,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// AboutProfileUpdate carries a partial update. Nil fields are left untouched.
type AboutProfileUpdate struct {
	Name         *string
	Title        *string
	Bio          *string
	Email        *string
	Location     *string
	Skills       *[]string
	Social       *SocialLinks
	Dog          *DogProfile
	ProfileImage *string
}
