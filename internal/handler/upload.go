package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/config"
	"github.com/mardelta/portfolio-api/internal/storage"
)

// maxUploadBytes caps an image upload at 5 MB, enforced while streaming.
const maxUploadBytes = 5 << 20

// allowedImageTypes maps accepted content types to file extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadHandler stores admin image uploads through the configured storage
// backend. Routes differ only in the key prefix the object lands under.
type UploadHandler struct {
	Cfg   config.Config
	Store storage.Storage
}

func NewUploadHandler(cfg config.Config, store storage.Storage) *UploadHandler {
	return &UploadHandler{Cfg: cfg, Store: store}
}

// ProfileImage handles the about-page portrait upload.
func (h *UploadHandler) ProfileImage(c echo.Context) error {
	return h.save(c, "profile")
}

// BlogCoverImage handles blog post cover uploads.
func (h *UploadHandler) BlogCoverImage(c echo.Context) error {
	return h.save(c, "blog")
}

// ProjectCoverImage handles project cover uploads.
func (h *UploadHandler) ProjectCoverImage(c echo.Context) error {
	return h.save(c, "project")
}

func (h *UploadHandler) save(c echo.Context, prefix string) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}

	contentType := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}
	if fh.Size > maxUploadBytes {
		return errJSON(c, http.StatusRequestEntityTooLarge, reasonValidationFailed)
	}

	src, err := fh.Open()
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
	// The declared size can lie; the reader stops one byte past the limit so
	// oversized bodies are caught even then.
	limited := &limitedReader{r: src, remaining: maxUploadBytes + 1}
	url, err := h.Store.Save(c.Request().Context(), key, limited, contentType)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	if limited.remaining <= 0 {
		// The truncated object must not stay behind serving a partial image.
		if err := h.Store.Delete(c.Request().Context(), key); err != nil {
			log.Printf("upload: removing oversized object %s: %v", key, err)
		}
		return errJSON(c, http.StatusRequestEntityTooLarge, reasonValidationFailed)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"url":  storage.ResolveURL(url, h.Cfg.S3CustomDomain),
		"kind": "image",
	})
}

type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
