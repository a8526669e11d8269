package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/config"
	"github.com/mardelta/portfolio-api/internal/session"
	"github.com/mardelta/portfolio-api/internal/utils"
)

// AuthHandler serves the admin password login, session introspection and
// logout endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Sessions *session.Manager
}

func NewAuthHandler(cfg config.Config, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Sessions: sessions}
}

type loginReq struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"` // some clients post the address under this key
	Password string `json:"password" form:"password"`
}

// Login verifies the admin credential and establishes the admin session.
// Accepts JSON or form bodies. Responds 204 on success so no token material
// ever appears in a response body.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		email = strings.ToLower(strings.TrimSpace(req.Username))
	}
	if email == "" || req.Password == "" {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}

	if email != h.Cfg.AdminEmail || !utils.VerifyPassword(h.Cfg.AdminPasswordHash, req.Password) {
		return errJSON(c, http.StatusUnauthorized, reasonUnauthenticated)
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Cfg.AdminEmail, h.Cfg.AccessTTLMin)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	if err := h.Sessions.SetAdmin(c, h.Cfg.AdminEmail, tok.Token); err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the authentication state of the current browser session.
// Marked no-store so intermediaries never serve a stale identity.
func (h *AuthHandler) Session(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")

	s := h.Sessions.Load(c)
	switch s.Kind {
	case session.KindAdmin:
		// An expired or invalid token means the session no longer counts.
		if _, err := utils.DecodeToken(h.Cfg.JWTSecret, s.Token); err != nil {
			return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"authenticated": true,
			"username":      s.AdminEmail,
			"is_admin":      true,
		})
	case session.KindUser:
		return c.JSON(http.StatusOK, echo.Map{
			"authenticated": true,
			"username":      s.UserName,
			"email":         s.UserEmail,
			"is_admin":      s.IsAdmin(h.Cfg.AdminEmail),
		})
	default:
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
	}
}

// Logout drops the session cookie and the auth_state mirror. The issued
// access token is not revoked; it simply stops travelling with the browser.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Sessions.Clear(c); err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.NoContent(http.StatusNoContent)
}
