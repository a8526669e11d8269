package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/config"
	"github.com/mardelta/portfolio-api/internal/model"
	"github.com/mardelta/portfolio-api/internal/repository"
	"github.com/mardelta/portfolio-api/internal/sanitize"
)

// AboutHandler serves the single about-page profile.
type AboutHandler struct {
	Cfg  config.Config
	Repo *repository.AboutRepo
}

func NewAboutHandler(cfg config.Config, repo *repository.AboutRepo) *AboutHandler {
	return &AboutHandler{Cfg: cfg, Repo: repo}
}

type aboutCreateReq struct {
	Name         string            `json:"name"`
	Title        string            `json:"title"`
	Bio          string            `json:"bio"`
	Email        string            `json:"email"`
	Location     string            `json:"location"`
	Skills       []string          `json:"skills"`
	Social       model.SocialLinks `json:"social"`
	Dog          *model.DogProfile `json:"dog"`
	ProfileImage string            `json:"profile_image"`
}

type aboutUpdateReq struct {
	Name         *string            `json:"name"`
	Title        *string            `json:"title"`
	Bio          *string            `json:"bio"`
	Email        *string            `json:"email"`
	Location     *string            `json:"location"`
	Skills       *[]string          `json:"skills"`
	Social       *model.SocialLinks `json:"social"`
	Dog          *model.DogProfile  `json:"dog"`
	ProfileImage *string            `json:"profile_image"`
}

// Get returns the profile, 404 when none has been configured yet.
func (h *AboutHandler) Get(c echo.Context) error {
	p, err := h.Repo.Get(c.Request().Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.JSON(http.StatusOK, p)
}

// Create stores the profile. Only one may exist.
func (h *AboutHandler) Create(c echo.Context) error {
	var req aboutCreateReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}
	p, err := aboutFromCreate(req)
	if err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}

	if err := h.Repo.Create(c.Request().Context(), p); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return errJSON(c, http.StatusBadRequest, reasonValidationFailed)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.JSON(http.StatusCreated, p)
}

// Update applies a partial update to the profile.
func (h *AboutHandler) Update(c echo.Context) error {
	var req aboutUpdateReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}
	upd, err := aboutFromUpdate(req)
	if err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}

	p, err := h.Repo.Update(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes the profile.
func (h *AboutHandler) Delete(c echo.Context) error {
	if err := h.Repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.NoContent(http.StatusNoContent)
}

func aboutFromCreate(req aboutCreateReq) (*model.AboutProfile, error) {
	image, err := sanitize.MediaPath(req.ProfileImage)
	if err != nil {
		return nil, err
	}
	social, err := sanitizeSocial(req.Social)
	if err != nil {
		return nil, err
	}
	dog, err := sanitizeDog(req.Dog)
	if err != nil {
		return nil, err
	}
	p := &model.AboutProfile{
		Name:         sanitize.PlainText(req.Name),
		Title:        sanitize.PlainText(req.Title),
		Bio:          sanitize.RichText(req.Bio),
		Email:        sanitize.PlainText(req.Email),
		Location:     sanitize.PlainText(req.Location),
		Skills:       sanitize.Tags(req.Skills),
		Social:       social,
		Dog:          dog,
		ProfileImage: image,
	}
	if p.Name == "" {
		return nil, errors.New("name is required")
	}
	return p, nil
}

func aboutFromUpdate(req aboutUpdateReq) (model.AboutProfileUpdate, error) {
	var upd model.AboutProfileUpdate
	if req.Name != nil {
		v := sanitize.PlainText(*req.Name)
		if v == "" {
			return upd, errors.New("name cannot be empty")
		}
		upd.Name = &v
	}
	if req.Title != nil {
		v := sanitize.PlainText(*req.Title)
		upd.Title = &v
	}
	if req.Bio != nil {
		v := sanitize.RichText(*req.Bio)
		upd.Bio = &v
	}
	if req.Email != nil {
		v := sanitize.PlainText(*req.Email)
		upd.Email = &v
	}
	if req.Location != nil {
		v := sanitize.PlainText(*req.Location)
		upd.Location = &v
	}
	if req.Skills != nil {
		v := sanitize.Tags(*req.Skills)
		upd.Skills = &v
	}
	if req.Social != nil {
		v, err := sanitizeSocial(*req.Social)
		if err != nil {
			return upd, err
		}
		upd.Social = &v
	}
	if req.Dog != nil {
		v, err := sanitizeDog(req.Dog)
		if err != nil {
			return upd, err
		}
		upd.Dog = v
	}
	if req.ProfileImage != nil {
		v, err := sanitize.MediaPath(*req.ProfileImage)
		if err != nil {
			return upd, err
		}
		upd.ProfileImage = &v
	}
	return upd, nil
}

func sanitizeSocial(s model.SocialLinks) (model.SocialLinks, error) {
	var out model.SocialLinks
	var err error
	if out.GitHub, err = sanitize.URL(s.GitHub); err != nil {
		return out, err
	}
	if out.LinkedIn, err = sanitize.URL(s.LinkedIn); err != nil {
		return out, err
	}
	if out.Twitter, err = sanitize.URL(s.Twitter); err != nil {
		return out, err
	}
	if out.HackerOne, err = sanitize.URL(s.HackerOne); err != nil {
		return out, err
	}
	return out, nil
}

func sanitizeDog(d *model.DogProfile) (*model.DogProfile, error) {
	if d == nil {
		return nil, nil
	}
	image, err := sanitize.MediaPath(d.Image)
	if err != nil {
		return nil, err
	}
	return &model.DogProfile{
		Name:   sanitize.PlainText(d.Name),
		Role:   sanitize.PlainText(d.Role),
		Bio:    sanitize.PlainText(d.Bio),
		Image:  image,
		Skills: sanitize.Tags(d.Skills),
	}, nil
}
