package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/model"
	"github.com/mardelta/portfolio-api/internal/repository"
	"github.com/mardelta/portfolio-api/internal/sanitize"
)

// StatusHandler records and lists client uptime pings.
type StatusHandler struct {
	Repo *repository.StatusRepo
}

func NewStatusHandler(repo *repository.StatusRepo) *StatusHandler {
	return &StatusHandler{Repo: repo}
}

type statusCreateReq struct {
	ClientName string `json:"client_name"`
}

// Create records a ping.
func (h *StatusHandler) Create(c echo.Context) error {
	var req statusCreateReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}
	name := sanitize.PlainText(req.ClientName)
	if name == "" {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}

	s := &model.StatusCheck{ClientName: name}
	if err := h.Repo.Create(c.Request().Context(), s); err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.JSON(http.StatusCreated, s)
}

// List returns every recorded ping, newest first.
func (h *StatusHandler) List(c echo.Context) error {
	out, err := h.Repo.ListAll(c.Request().Context())
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.JSON(http.StatusOK, out)
}
