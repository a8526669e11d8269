// Package handler contains the HTTP handlers. Handlers stay thin: bind,
// sanitize, call a repository or the cache, map errors to statuses.
package handler

import (
	"github.com/labstack/echo/v4"
)

// Machine-readable error reasons returned in the {"error": ...} payload.
const (
	reasonUnauthenticated  = "unauthenticated"
	reasonForbidden        = "forbidden"
	reasonNotFound         = "not_found"
	reasonValidationFailed = "validation_failed"
	reasonUpstreamFailure  = "upstream_failure"
)

func errJSON(c echo.Context, status int, reason string) error {
	return c.JSON(status, echo.Map{"error": reason})
}
