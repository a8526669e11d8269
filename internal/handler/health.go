package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root is a plain-text banner confirming the service is up.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "Portfolio API is running.")
}

// Healthz is the machine health probe.
func Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
