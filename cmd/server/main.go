// Entry point: composition root wiring config, database, cache, sessions,
// SSO providers, storage and the HTTP router.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mardelta/portfolio-api/internal/cache"
	"github.com/mardelta/portfolio-api/internal/config"
	"github.com/mardelta/portfolio-api/internal/database"
	"github.com/mardelta/portfolio-api/internal/handler"
	"github.com/mardelta/portfolio-api/internal/repository"
	"github.com/mardelta/portfolio-api/internal/router"
	"github.com/mardelta/portfolio-api/internal/session"
	"github.com/mardelta/portfolio-api/internal/sso"
	"github.com/mardelta/portfolio-api/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	blogRepo := repository.NewBlogRepo(db)
	projectRepo := repository.NewProjectRepo(db)
	aboutRepo := repository.NewAboutRepo(db)
	statusRepo := repository.NewStatusRepo(db)
	userRepo := repository.NewUserRepo(db)
	commentRepo := repository.NewCommentRepo(db)

	contentCache := cache.NewContentCache(blogRepo, projectRepo)
	if err := contentCache.Refresh(ctx); err != nil {
		// Boot continues with an empty snapshot; the first successful
		// refresh fills it.
		log.Printf("initial cache refresh failed: %v", err)
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionCookieName,
		cfg.SessionMaxAgeSec, cfg.SessionCookieSecure, cfg.SessionCookieDomain)

	store, localDir := buildStorage(ctx, cfg)
	providers := buildProviders(ctx, cfg)

	rdb := config.NewRedisClient()

	h := router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, sessions),
		SSO:     handler.NewSSOHandler(cfg, providers, userRepo, sessions),
		Blog:    handler.NewBlogHandler(cfg, blogRepo, contentCache),
		Project: handler.NewProjectHandler(cfg, projectRepo, contentCache),
		About:   handler.NewAboutHandler(cfg, aboutRepo),
		Comment: handler.NewCommentHandler(cfg, commentRepo, blogRepo, sessions),
		Status:  handler.NewStatusHandler(statusRepo),
		Upload:  handler.NewUploadHandler(cfg, store),
		Cache:   handler.NewCacheHandler(contentCache),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, sessions, rdb, h, localDir)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, storage=%s)", addr, cfg.Env, cfg.StorageType)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// buildStorage picks the configured upload backend. The second return value
// is the directory to serve at /uploads, empty when uploads live in S3/R2.
func buildStorage(ctx context.Context, cfg config.Config) (storage.Storage, string) {
	if cfg.StorageType == "s3" {
		s3store, err := storage.NewS3(ctx, storage.S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			AccessKeyID:  cfg.S3AccessKeyID,
			SecretKey:    cfg.S3SecretKey,
			EndpointURL:  cfg.S3EndpointURL,
			CustomDomain: cfg.S3CustomDomain,
		})
		if err != nil {
			log.Fatalf("s3 storage: %v", err)
		}
		return s3store, ""
	}
	local, err := storage.NewLocal(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("local storage: %v", err)
	}
	return local, local.Dir()
}

// buildProviders registers every SSO provider whose credentials are
// configured. Redirect URLs follow the callback route shape.
func buildProviders(ctx context.Context, cfg config.Config) *sso.Registry {
	callback := func(name string) string {
		return cfg.FrontendOrigin + "/auth/sso/" + name + "/callback"
	}

	var list []sso.Provider

	google, err := sso.NewGoogle(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, callback("google"))
	if err != nil {
		log.Printf("sso google: discovery failed, provider disabled: %v", err)
	} else if google != nil {
		list = append(list, google)
	}
	if p := sso.NewGitHub(cfg.GitHubClientID, cfg.GitHubClientSecret, callback("github")); p != nil {
		list = append(list, p)
	}
	// The X users endpoint exposes no email address, so twitter identities
	// come back without one and the callback turns them away. The provider
	// stays registered so the flow starts working the moment X grants the
	// email scope.
	if p := sso.NewTwitter(cfg.TwitterClientID, cfg.TwitterClientSecret, callback("twitter")); p != nil {
		list = append(list, p)
	}
	if p := sso.NewMeta(cfg.MetaClientID, cfg.MetaClientSecret, callback("meta")); p != nil {
		list = append(list, p)
	}
	return sso.NewRegistry(list...)
}
