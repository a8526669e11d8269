package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/config"
	"github.com/mardelta/portfolio-api/internal/model"
	"github.com/mardelta/portfolio-api/internal/repository"
	"github.com/mardelta/portfolio-api/internal/session"
	"github.com/mardelta/portfolio-api/internal/sso"
)

// stateCookieName holds the OAuth state value between redirect and callback.
const stateCookieName = "oauth_state"

// stateTTL bounds how long an SSO round trip may take.
const stateTTL = 10 * time.Minute

// exchangeTimeout caps the outbound token-exchange and profile calls so a
// slow provider cannot pin a request indefinitely.
const exchangeTimeout = 15 * time.Second

// SSOHandler drives the third-party login redirect and callback endpoints.
type SSOHandler struct {
	Cfg       config.Config
	Providers *sso.Registry
	Users     *repository.UserRepo
	Sessions  *session.Manager
}

func NewSSOHandler(cfg config.Config, providers *sso.Registry, users *repository.UserRepo, sessions *session.Manager) *SSOHandler {
	return &SSOHandler{Cfg: cfg, Providers: providers, Users: users, Sessions: sessions}
}

// Login generates a fresh state value, stores it in a short-lived HttpOnly
// cookie and redirects the browser to the provider's consent page.
func (h *SSOHandler) Login(c echo.Context) error {
	p, err := h.Providers.Get(c.Param("provider"))
	if err != nil {
		return errJSON(c, http.StatusNotFound, reasonNotFound)
	}

	state, err := randomState()
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL / time.Second),
		HttpOnly: true,
		Secure:   h.Cfg.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, p.AuthCodeURL(state))
}

// Callback completes the OAuth flow: the state parameter must match the value
// this service generated (a mismatch is a hard failure, never retried here),
// the code is exchanged with a bounded deadline, and the resulting identity
// is upserted into user_profiles before the session is established.
func (h *SSOHandler) Callback(c echo.Context) error {
	p, err := h.Providers.Get(c.Param("provider"))
	if err != nil {
		return errJSON(c, http.StatusNotFound, reasonNotFound)
	}

	state := c.QueryParam("state")
	code := c.QueryParam("code")
	cookie, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || cookie.Value != state {
		return errJSON(c, http.StatusBadRequest, reasonValidationFailed)
	}
	h.clearStateCookie(c)
	if code == "" {
		return errJSON(c, http.StatusBadRequest, reasonValidationFailed)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), exchangeTimeout)
	defer cancel()

	// The state value doubles as the PKCE verifier for providers that need
	// one; it was already proven to match the cookie above.
	id, err := p.Exchange(ctx, code, state)
	if err != nil {
		// Provider detail stays in the log; the client sees a generic
		// upstream failure.
		log.Printf("sso %s: exchange failed: %v", p.Name(), err)
		return errJSON(c, http.StatusBadGateway, reasonUpstreamFailure)
	}
	if id.Email == "" {
		log.Printf("sso %s: provider returned no email", p.Name())
		return errJSON(c, http.StatusBadRequest, reasonUpstreamFailure)
	}

	user, err := h.Users.Upsert(ctx, model.UserProfile{
		Email:      id.Email,
		Name:       id.Name,
		AvatarURL:  id.AvatarURL,
		Provider:   id.Provider,
		ProviderID: id.ProviderID,
	})
	if err != nil {
		log.Printf("sso %s: user upsert failed: %v", p.Name(), err)
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}

	if err := h.Sessions.SetUser(c, *user); err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.Redirect(http.StatusFound, h.Cfg.FrontendOrigin+"/blog")
}

func (h *SSOHandler) clearStateCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cfg.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
