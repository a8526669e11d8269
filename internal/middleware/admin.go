// Package middleware contains reusable HTTP middleware: the admin session
// guard and the redis-backed rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/config"
	"github.com/mardelta/portfolio-api/internal/session"
	"github.com/mardelta/portfolio-api/internal/utils"
)

// ContextAdminEmail is the context key under which RequireAdmin stores the
// verified admin email for downstream handlers.
const ContextAdminEmail = "admin_email"

// RequireAdmin returns a middleware that only lets administrative sessions
// through. Two entry points qualify: the password-login session carrying a
// valid JWT whose subject is the configured admin email, and an SSO session
// whose account email matches the admin email. Anonymous requests get 401,
// authenticated non-admins get 403.
func RequireAdmin(cfg *config.Config, sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Load(c)
			switch s.Kind {
			case session.KindAdmin:
				claims, err := utils.DecodeToken(cfg.JWTSecret, s.Token)
				if err == utils.ErrTokenExpired {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated", "message": "session expired"})
				}
				if err != nil {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
				}
				sub := utils.Subject(claims)
				if !strings.EqualFold(sub, cfg.AdminEmail) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
				}
				// The email marker written at login must still agree with the
				// token subject; a mismatch means the cookie was tampered with
				// or crossed environments.
				if s.AdminEmail != "" && !strings.EqualFold(s.AdminEmail, sub) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
				}
				c.Set(ContextAdminEmail, cfg.AdminEmail)
				return next(c)
			case session.KindUser:
				if s.IsAdmin(cfg.AdminEmail) {
					c.Set(ContextAdminEmail, cfg.AdminEmail)
					return next(c)
				}
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			default:
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
			}
		}
	}
}
