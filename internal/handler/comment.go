package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/config"
	"github.com/mardelta/portfolio-api/internal/model"
	"github.com/mardelta/portfolio-api/internal/repository"
	"github.com/mardelta/portfolio-api/internal/sanitize"
	"github.com/mardelta/portfolio-api/internal/session"
)

// CommentHandler serves the comment tree under blog posts. Writing requires
// an SSO session; deletion is open to the comment's author and the admin.
type CommentHandler struct {
	Cfg      config.Config
	Comments *repository.CommentRepo
	Blogs    *repository.BlogRepo
	Sessions *session.Manager
}

func NewCommentHandler(cfg config.Config, comments *repository.CommentRepo, blogs *repository.BlogRepo, sessions *session.Manager) *CommentHandler {
	return &CommentHandler{Cfg: cfg, Comments: comments, Blogs: blogs, Sessions: sessions}
}

type commentCreateReq struct {
	Content  string `json:"content"`
	ParentID string `json:"parent_id"`
}

// List returns the comment tree for a post: top-level comments in creation
// order, replies nested beneath them.
func (h *CommentHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("id")
	if _, err := h.Blogs.Get(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	tree, err := h.Comments.ListByPost(ctx, postID)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.JSON(http.StatusOK, tree)
}

// Create adds a comment or a reply. Replies may only target top-level
// comments of the same post, keeping the rendered tree one level deep.
func (h *CommentHandler) Create(c echo.Context) error {
	s := h.Sessions.Load(c)
	if s.Kind != session.KindUser {
		return errJSON(c, http.StatusUnauthorized, reasonUnauthenticated)
	}

	var req commentCreateReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}
	content := sanitize.PlainText(req.Content)
	if content == "" {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}

	ctx := c.Request().Context()
	postID := c.Param("id")
	if _, err := h.Blogs.Get(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}

	if req.ParentID != "" {
		parent, err := h.Comments.GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errJSON(c, http.StatusNotFound, reasonNotFound)
			}
			return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
		}
		if parent.BlogPostID != postID {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		if parent.ParentID != "" {
			// Replying to a reply would start a deeper thread.
			return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
		}
	}

	comment := &model.Comment{
		BlogPostID: postID,
		UserID:     s.UserID,
		ParentID:   req.ParentID,
		Content:    content,
		UserName:   s.UserName,
	}
	if err := h.Comments.Create(ctx, comment); err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.JSON(http.StatusCreated, comment)
}

// Delete tombstones a comment. The author may remove their own; the admin
// may remove any.
func (h *CommentHandler) Delete(c echo.Context) error {
	s := h.Sessions.Load(c)
	if !s.Authenticated() {
		return errJSON(c, http.StatusUnauthorized, reasonUnauthenticated)
	}

	err := h.Comments.SoftDelete(c.Request().Context(), c.Param("id"), s.UserID, s.IsAdmin(h.Cfg.AdminEmail))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		case errors.Is(err, repository.ErrForbidden):
			return errJSON(c, http.StatusForbidden, reasonForbidden)
		default:
			return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
