// Package router defines how HTTP routes are registered for the API.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/mardelta/portfolio-api/internal/config"
	"github.com/mardelta/portfolio-api/internal/handler"
	"github.com/mardelta/portfolio-api/internal/middleware"
	"github.com/mardelta/portfolio-api/internal/session"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth    *handler.AuthHandler
	SSO     *handler.SSOHandler
	Blog    *handler.BlogHandler
	Project *handler.ProjectHandler
	About   *handler.AboutHandler
	Comment *handler.CommentHandler
	Status  *handler.StatusHandler
	Upload  *handler.UploadHandler
	Cache   *handler.CacheHandler
}

// Register wires all routes onto the Echo instance. Mutating endpoints sit
// behind the admin guard; the login endpoint gets its own stricter rate
// bucket; everything shares the general API bucket.
func Register(e *echo.Echo, cfg config.Config, sessions *session.Manager, rdb *redis.Client, h Handlers, localUploadsDir string) {
	rl := config.LoadRateLimitConfig()

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(middleware.NewAPIBucket(rl, rdb))

	admin := middleware.RequireAdmin(&cfg, sessions)
	loginBucket := middleware.NewLoginBucket(rl, rdb)

	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Healthz)

	// Locally stored uploads are served straight from disk; with S3 storage
	// the returned URLs point at the bucket and this mount stays unused.
	if localUploadsDir != "" {
		e.Static("/uploads", localUploadsDir)
	}

	auth := e.Group("/auth")
	auth.POST("/login", h.Auth.Login, loginBucket)
	auth.GET("/session", h.Auth.Session)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/sso/:provider/login", h.SSO.Login)
	auth.GET("/sso/:provider/callback", h.SSO.Callback)

	blogs := e.Group("/blogs")
	blogs.GET("", h.Blog.List)
	blogs.GET("/rss.xml", h.Blog.RSS)
	blogs.GET("/data.js", h.Blog.DataJS)
	blogs.GET("/:id", h.Blog.Get)
	blogs.POST("", h.Blog.Create, admin)
	blogs.PUT("/:id", h.Blog.Update, admin)
	blogs.DELETE("/:id", h.Blog.Delete, admin)

	blogs.GET("/:id/comments", h.Comment.List)
	blogs.POST("/:id/comments", h.Comment.Create)
	e.DELETE("/comments/:id", h.Comment.Delete)

	projects := e.Group("/projects")
	projects.GET("", h.Project.List)
	projects.GET("/data.js", h.Project.DataJS)
	projects.GET("/:id", h.Project.Get)
	projects.POST("", h.Project.Create, admin)
	projects.PUT("/:id", h.Project.Update, admin)
	projects.DELETE("/:id", h.Project.Delete, admin)

	e.GET("/about", h.About.Get)
	e.POST("/about", h.About.Create, admin)
	e.PUT("/about/:id", h.About.Update, admin)
	e.DELETE("/about/:id", h.About.Delete, admin)

	e.POST("/status", h.Status.Create)
	e.GET("/status", h.Status.List)

	uploads := e.Group("/uploads", admin)
	uploads.POST("/profile-image", h.Upload.ProfileImage)
	uploads.POST("/blogs/cover-image", h.Upload.BlogCoverImage)
	uploads.POST("/projects/cover-image", h.Upload.ProjectCoverImage)

	e.POST("/cache/refresh", h.Cache.Refresh, admin)
}
