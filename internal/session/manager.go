package session

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/model"
)

// AuthStateCookie is a second, non-HttpOnly cookie mirroring authentication
// status so the frontend can detect login state without access to the token.
const AuthStateCookie = "auth_state"

// Session value keys inside the signed cookie.
const (
	keyJWT        = "jwt"
	keyAdminEmail = "admin_email"
	keyUserID     = "user_id"
	keyUserEmail  = "user_email"
	keyUserName   = "user_name"
)

// Manager issues, reads and clears the signed session cookie plus the
// auth_state mirror cookie.
type Manager struct {
	store  *sessions.CookieStore
	name   string
	maxAge int
	secure bool
	domain string
}

// NewManager builds a Manager backed by a signed cookie store.
func NewManager(secret, cookieName string, maxAgeSec int, secure bool, domain string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   maxAgeSec,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
	return &Manager{
		store:  store,
		name:   cookieName,
		maxAge: maxAgeSec,
		secure: secure,
		domain: domain,
	}
}

// Load decodes the request's session cookie into a tagged Session. A missing
// or corrupt cookie yields an anonymous session, never an error.
func (m *Manager) Load(c echo.Context) Session {
	raw, err := m.store.Get(c.Request(), m.name)
	if err != nil || raw.IsNew {
		return Session{Kind: KindAnonymous}
	}
	get := func(key string) string {
		if v, ok := raw.Values[key].(string); ok {
			return v
		}
		return ""
	}
	if token := get(keyJWT); token != "" {
		return Session{
			Kind:       KindAdmin,
			AdminEmail: get(keyAdminEmail),
			Token:      token,
		}
	}
	if userID := get(keyUserID); userID != "" {
		return Session{
			Kind:      KindUser,
			UserID:    userID,
			UserEmail: get(keyUserEmail),
			UserName:  get(keyUserName),
		}
	}
	return Session{Kind: KindAnonymous}
}

// SetAdmin replaces the session with an admin session and mirrors the state
// in the auth_state cookie.
func (m *Manager) SetAdmin(c echo.Context, email, token string) error {
	raw, _ := m.store.Get(c.Request(), m.name)
	raw.Values = map[interface{}]interface{}{
		keyJWT:        token,
		keyAdminEmail: email,
	}
	raw.Options = m.store.Options
	if err := raw.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	m.setAuthState(c, true)
	return nil
}

// SetUser replaces the session with an SSO user session and mirrors the state
// in the auth_state cookie.
func (m *Manager) SetUser(c echo.Context, u model.UserProfile) error {
	raw, _ := m.store.Get(c.Request(), m.name)
	raw.Values = map[interface{}]interface{}{
		keyUserID:    u.ID,
		keyUserEmail: u.Email,
		keyUserName:  u.Name,
	}
	raw.Options = m.store.Options
	if err := raw.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	m.setAuthState(c, true)
	return nil
}

// Clear drops the session and the auth_state cookie. The access token itself
// is not revoked; it simply stops travelling with the browser.
func (m *Manager) Clear(c echo.Context) error {
	raw, _ := m.store.Get(c.Request(), m.name)
	raw.Values = map[interface{}]interface{}{}
	opts := *m.store.Options
	opts.MaxAge = -1
	raw.Options = &opts
	if err := raw.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	m.setAuthState(c, false)
	return nil
}

// setAuthState writes or deletes the frontend-visible auth_state cookie.
// Deliberately not HttpOnly; it carries no secret, only a boolean.
func (m *Manager) setAuthState(c echo.Context, on bool) {
	cookie := &http.Cookie{
		Name:     AuthStateCookie,
		Path:     "/",
		Domain:   m.domain,
		Secure:   m.secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	}
	if on {
		cookie.Value = "true"
		cookie.MaxAge = m.maxAge
	} else {
		cookie.Value = ""
		cookie.MaxAge = -1
	}
	c.SetCookie(cookie)
}
