package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/cache"
	"github.com/mardelta/portfolio-api/internal/config"
	"github.com/mardelta/portfolio-api/internal/model"
	"github.com/mardelta/portfolio-api/internal/queue"
	"github.com/mardelta/portfolio-api/internal/repository"
	"github.com/mardelta/portfolio-api/internal/sanitize"
	queue_publisher "github.com/mardelta/portfolio-api/internal/service"
)

// publishedAtLayout is the calendar-date format of BlogPost.PublishedAt.
const publishedAtLayout = "2006-01-02"

// BlogHandler serves the blog collection. Reads come from the cache; every
// mutation refreshes the cache synchronously before responding so the writer
// observes its own change on the next read.
type BlogHandler struct {
	Cfg   config.Config
	Repo  *repository.BlogRepo
	Cache *cache.ContentCache
}

func NewBlogHandler(cfg config.Config, repo *repository.BlogRepo, cc *cache.ContentCache) *BlogHandler {
	return &BlogHandler{Cfg: cfg, Repo: repo, Cache: cc}
}

type blogCreateReq struct {
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"published_at"`
	ReadTime    string   `json:"read_time"`
	Image       string   `json:"image"`
}

type blogUpdateReq struct {
	Title       *string   `json:"title"`
	Excerpt     *string   `json:"excerpt"`
	Content     *string   `json:"content"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	PublishedAt *string   `json:"published_at"`
	ReadTime    *string   `json:"read_time"`
	Image       *string   `json:"image"`
}

// List returns the cached blog snapshot, newest publish date first.
func (h *BlogHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Cache.Blogs())
}

// Get returns a single post by id straight from the database.
func (h *BlogHandler) Get(c echo.Context) error {
	post, err := h.Repo.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.JSON(http.StatusOK, post)
}

// Create inserts a post, refreshes the cache and announces the change.
func (h *BlogHandler) Create(c echo.Context) error {
	var req blogCreateReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}
	post, err := blogFromCreate(req)
	if err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}

	ctx := c.Request().Context()
	if err := h.Repo.Create(ctx, post); err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	if err := h.Cache.Refresh(ctx); err != nil {
		log.Printf("blog create %s: %v", post.ID, err)
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	announceContent("blog_post", "created", post.ID, post.Title)
	return c.JSON(http.StatusCreated, post)
}

// Update applies a partial update, refreshes the cache and announces the
// change.
func (h *BlogHandler) Update(c echo.Context) error {
	var req blogUpdateReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}
	upd, err := blogFromUpdate(req)
	if err != nil {
		return errJSON(c, http.StatusUnprocessableEntity, reasonValidationFailed)
	}

	ctx := c.Request().Context()
	post, err := h.Repo.Update(ctx, c.Param("id"), upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	if err := h.Cache.Refresh(ctx); err != nil {
		log.Printf("blog update %s: %v", post.ID, err)
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	announceContent("blog_post", "updated", post.ID, post.Title)
	return c.JSON(http.StatusOK, post)
}

// Delete removes a post, refreshes the cache and announces the change.
func (h *BlogHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()
	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, reasonNotFound)
		}
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	if err := h.Cache.Refresh(ctx); err != nil {
		log.Printf("blog delete %s: %v", id, err)
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	announceContent("blog_post", "deleted", id, "")
	return c.NoContent(http.StatusNoContent)
}

// RSS renders the cached posts as an RSS 2.0 feed. Item dates come from the
// published_at field when it parses; creation time is the fallback.
func (h *BlogHandler) RSS(c echo.Context) error {
	posts := h.Cache.Blogs()
	feed := &feeds.Feed{
		Title:       "Blog",
		Link:        &feeds.Link{Href: h.Cfg.FrontendOrigin + "/blog"},
		Description: "Latest blog posts",
		Updated:     time.Now().UTC(),
	}
	for _, p := range posts {
		when := p.CreatedAt
		if t, err := time.Parse(publishedAtLayout, p.PublishedAt); err == nil {
			when = t
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.ID,
			Title:       p.Title,
			Link:        &feeds.Link{Href: h.Cfg.FrontendOrigin + "/blog/" + p.ID},
			Description: p.Excerpt,
			Created:     when,
		})
	}
	out, err := feed.ToRss()
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(out))
}

// DataJS serves the cached posts as a script that hangs the data off a
// window global, for static-host embedding without a fetch round trip.
func (h *BlogHandler) DataJS(c echo.Context) error {
	return dataJS(c, "blogs", h.Cache.Blogs())
}

func blogFromCreate(req blogCreateReq) (*model.BlogPost, error) {
	image, err := sanitize.MediaPath(req.Image)
	if err != nil {
		return nil, err
	}
	post := &model.BlogPost{
		Title:       sanitize.PlainText(req.Title),
		Excerpt:     sanitize.PlainText(req.Excerpt),
		Content:     sanitize.RichText(req.Content),
		Category:    sanitize.PlainText(req.Category),
		Tags:        sanitize.Tags(req.Tags),
		PublishedAt: sanitize.PlainText(req.PublishedAt),
		ReadTime:    sanitize.PlainText(req.ReadTime),
		Image:       image,
	}
	if post.Title == "" || post.Content == "" {
		return nil, errors.New("title and content are required")
	}
	if post.PublishedAt == "" {
		post.PublishedAt = time.Now().UTC().Format(publishedAtLayout)
	} else if _, err := time.Parse(publishedAtLayout, post.PublishedAt); err != nil {
		return nil, err
	}
	return post, nil
}

func blogFromUpdate(req blogUpdateReq) (model.BlogPostUpdate, error) {
	var upd model.BlogPostUpdate
	if req.Title != nil {
		v := sanitize.PlainText(*req.Title)
		if v == "" {
			return upd, errors.New("title cannot be empty")
		}
		upd.Title = &v
	}
	if req.Excerpt != nil {
		v := sanitize.PlainText(*req.Excerpt)
		upd.Excerpt = &v
	}
	if req.Content != nil {
		v := sanitize.RichText(*req.Content)
		if v == "" {
			return upd, errors.New("content cannot be empty")
		}
		upd.Content = &v
	}
	if req.Category != nil {
		v := sanitize.PlainText(*req.Category)
		upd.Category = &v
	}
	if req.Tags != nil {
		v := sanitize.Tags(*req.Tags)
		upd.Tags = &v
	}
	if req.PublishedAt != nil {
		v := sanitize.PlainText(*req.PublishedAt)
		if _, err := time.Parse(publishedAtLayout, v); err != nil {
			return upd, err
		}
		upd.PublishedAt = &v
	}
	if req.ReadTime != nil {
		v := sanitize.PlainText(*req.ReadTime)
		upd.ReadTime = &v
	}
	if req.Image != nil {
		v, err := sanitize.MediaPath(*req.Image)
		if err != nil {
			return upd, err
		}
		upd.Image = &v
	}
	return upd, nil
}

// announceContent publishes a content event in the background. Broker
// trouble never delays or fails the request that caused the event.
func announceContent(kind, action, id, title string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishContentEvent(ctx, queue.ContentEvent{
			Kind:       kind,
			Action:     action,
			ID:         id,
			Title:      title,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()
}

// dataJS writes a JSON payload onto the shared window global.
func dataJS(c echo.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, reasonUpstreamFailure)
	}
	body := "window.__PORTFOLIO_DATA__ = window.__PORTFOLIO_DATA__ || {};\n" +
		"window.__PORTFOLIO_DATA__." + key + " = " + string(raw) + ";\n"
	return c.Blob(http.StatusOK, "application/javascript; charset=utf-8", []byte(body))
}
