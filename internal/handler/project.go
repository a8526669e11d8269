package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/cache"
	"github.com/mardelta/portfolio-api/internal/config"
	"github.com/mardelta/portfolio-api/internal/model"
	"github.com/mardelta/portfolio-api/internal/repository"
	"github.com/mardelta/portfolio-api/internal/sanitize"
)

// ProjectHandler serves the project collection. Same cache discipline as the
// blog handler: reads hit the snapshot, writes refresh it before responding.
type ProjectHandler struct {
	Cfg   config.Config
	Repo  *repository.ProjectRepo
	Cache *cache.ContentCache
}

func NewProjectHandler(cfg config.Config, repo *repository.ProjectRepo, cc *cache.ContentCache) *ProjectHandler {
	return &ProjectHandler{Cfg: cfg, Repo: repo, Cache: cc}
}

type projectCreateReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	DateLabel   string   `json:"date_label"`
	GitHub      string   `json:"github"`
	Demo        string   `json:"demo"`
}

type projectUpdateReq struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	Image       *string   `json:"image"`
	DateLabel   *string   `json:"date_label"`
	GitHub      *string   `json:"github"`
	Demo        *string   `json:"demo"`
}

// List returns the cached project snapshot, newest first.
func (h *ProjectHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Cache.Projects())
}

// Get returns a single project by id.
func (h *ProjectHandler) Get(c echo.Context) error {
	p, err := h.Repo.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.JSON(http.StatusOK, p)
}

// Create inserts a project, refreshes the cache and announces the change.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectCreateReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}
	p, err := projectFromCreate(req)
	if err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}

	ctx := c.Request().Context()
	if err := h.Repo.Create(ctx, p); err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	if err := h.Cache.Refresh(ctx); err != nil {
		log.Printf("project create %s: %v", p.ID, err)
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	announceContent("project", "created", p.ID, p.Title)
	return c.JSON(http.StatusCreated, p)
}

// Update applies a partial update, refreshes the cache and announces the
// change.
func (h *ProjectHandler) Update(c echo.Context) error {
	var req projectUpdateReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}
	upd, err := projectFromUpdate(req)
	if err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}

	ctx := c.Request().Context()
	p, err := h.Repo.Update(ctx, c.Param("id"), upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	if err := h.Cache.Refresh(ctx); err != nil {
		log.Printf("project update %s: %v", p.ID, err)
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	announceContent("project", "updated", p.ID, p.Title)
	return c.JSON(http.StatusOK, p)
}

// Delete removes a project, refreshes the cache and announces the change.
func (h *ProjectHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()
	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	if err := h.Cache.Refresh(ctx); err != nil {
		log.Printf("project delete %s: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	announceContent("project", "deleted", id, "")
	return c.NoContent(http.StatusNoContent)
}

// DataJS serves the cached projects as a window-global script.
func (h *ProjectHandler) DataJS(c echo.Context) error {
	return dataJS(c, "projects", h.Cache.Projects())
}

func projectFromCreate(req projectCreateReq) (*model.Project, error) {
	image, err := sanitize.MediaPath(req.Image)
	if err != nil {
		return nil, err
	}
	github, err := sanitize.URL(req.GitHub)
	if err != nil {
		return nil, err
	}
	demo, err := sanitize.URL(req.Demo)
	if err != nil {
		return nil, err
	}
	p := &model.Project{
		Title:       sanitize.PlainText(req.Title),
		Description: sanitize.RichText(req.Description),
		Category:    sanitize.PlainText(req.Category),
		Tags:        sanitize.Tags(req.Tags),
		Image:       image,
		DateLabel:   sanitize.PlainText(req.DateLabel),
		GitHub:      github,
		Demo:        demo,
	}
	if p.Title == "" || p.Description == "" {
		return nil, errors.New("title and description are required")
	}
	return p, nil
}

func projectFromUpdate(req projectUpdateReq) (model.ProjectUpdate, error) {
	var upd model.ProjectUpdate
	if req.Title != nil {
		v := sanitize.PlainText(*req.Title)
		if v == "" {
			return upd, errors.New("title cannot be empty")
		}
		upd.Title = &v
	}
	if req.Description != nil {
		v := sanitize.RichText(*req.Description)
		if v == "" {
			return upd, errors.New("description cannot be empty")
		}
		upd.Description = &v
	}
	if req.Category != nil {
		v := sanitize.PlainText(*req.Category)
		upd.Category = &v
	}
	if req.Tags != nil {
		v := sanitize.Tags(*req.Tags)
		upd.Tags = &v
	}
	if req.Image != nil {
		v, err := sanitize.MediaPath(*req.Image)
		if err != nil {
			return upd, err
		}
		upd.Image = &v
	}
	if req.DateLabel != nil {
		v := sanitize.PlainText(*req.DateLabel)
		upd.DateLabel = &v
	}
	if req.GitHub != nil {
		v, err := sanitize.URL(*req.GitHub)
		if err != nil {
			return upd, err
		}
		upd.GitHub = &v
	}
	if req.Demo != nil {
		v, err := sanitize.URL(*req.Demo)
		if err != nil {
			return upd, err
		}
		upd.Demo = &v
	}
	return upd, nil
}
