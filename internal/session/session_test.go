package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdminAdminKind(t *testing.T) {
	s := Session{Kind: KindAdmin, AdminEmail: "Admin@Example.com"}
	assert.True(t, s.IsAdmin("admin@example.com"))
	assert.False(t, s.IsAdmin("other@example.com"))
}

func TestIsAdminUserKind(t *testing.T) {
	// An SSO session whose email matches the configured admin wields the
	// same capability as the JWT session.
	s := Session{Kind: KindUser, UserID: "u1", UserEmail: "admin@example.com"}
	assert.True(t, s.IsAdmin("ADMIN@example.com"))

	visitor := Session{Kind: KindUser, UserID: "u2", UserEmail: "visitor@example.com"}
	assert.False(t, visitor.IsAdmin("admin@example.com"))
}

func TestIsAdminAnonymous(t *testing.T) {
	assert.False(t, Session{Kind: KindAnonymous}.IsAdmin("admin@example.com"))
}

func TestAuthenticated(t *testing.T) {
	assert.False(t, Session{Kind: KindAnonymous}.Authenticated())
	assert.True(t, Session{Kind: KindAdmin}.Authenticated())
	assert.True(t, Session{Kind: KindUser}.Authenticated())
}
