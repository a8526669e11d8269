package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/cache"
)

// CacheHandler exposes the manual refresh trigger for operators.
type CacheHandler struct {
	Cache *cache.ContentCache
}

func NewCacheHandler(cc *cache.ContentCache) *CacheHandler {
	return &CacheHandler{Cache: cc}
}

// Refresh rebuilds both snapshots. A database failure keeps the old snapshot
// and is reported to the caller.
func (h *CacheHandler) Refresh(c echo.Context) error {
	if err := h.Cache.Refresh(c.Request().Context()); err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.JSON(http.StatusOK, echo.Map{"refreshed": true})
}
