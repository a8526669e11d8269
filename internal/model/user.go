package model

import "time"

// UserProfile represents a visitor who signed in through a third-party
// provider. Rows are keyed by email: a repeat sign-in from any provider with
// the same address updates name and avatar but keeps the original provider
// identity fields.
type UserProfile struct {
	ID         string    `json:"id"` // user_profiles.id (UUID)
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	Provider   string    `json:"provider"` // google, github, twitter, meta
	ProviderID string    `json:"provider_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
