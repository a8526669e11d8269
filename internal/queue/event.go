// Package queue defines message payloads exchanged over the message broker.
package queue

// ContentEvent is published whenever a blog post or project is created,
// updated, or deleted. Downstream consumers (feed re-builders, webhooks,
// analytics) can react without querying the primary database.
type ContentEvent struct {
	Kind       string `json:"kind"`   // "blog_post" or "project"
	Action     string `json:"action"` // "created", "updated", "deleted"
	ID         string `json:"id"`
	Title      string `json:"title,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
