package model

import "time"

// StatusCheck records a client ping used for uptime verification.
type StatusCheck struct {
	ID         string    `json:"id"` // status_checks.id (UUID)
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
