// Package session wraps the signed cookie session in a tagged value so the
// rest of the code never inspects raw session keys. A session is exactly one
// of: anonymous, admin (password+JWT login) or user (SSO login).
package session

import (
	"strings"
)

// Kind discriminates the session variants.
type Kind int

const (
	// KindAnonymous is a request without an established identity.
	KindAnonymous Kind = iota
	// KindAdmin is the administrative session established by password login.
	// It carries the issued JWT plus the admin email marker.
	KindAdmin
	// KindUser is a visitor session established by an SSO callback.
	KindUser
)

// Session is the decoded content of the signed session cookie.
type Session struct {
	Kind Kind

	// KindAdmin fields.
	AdminEmail string
	Token      string

	// KindUser fields.
	UserID    string
	UserEmail string
	UserName  string
}

// Authenticated reports whether any identity is established.
func (s Session) Authenticated() bool { return s.Kind != KindAnonymous }

// IsAdmin reports whether this session wields administrative capability for
// the configured admin email. Both admin entry points count: the JWT-backed
// admin session and an SSO session whose email matches the admin identity.
// Every moderation gate consumes this single predicate.
func (s Session) IsAdmin(adminEmail string) bool {
	adminEmail = strings.ToLower(adminEmail)
	switch s.Kind {
	case KindAdmin:
		return strings.ToLower(s.AdminEmail) == adminEmail
	case KindUser:
		return strings.ToLower(s.UserEmail) == adminEmail
	}
	return false
}
