// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Strings for identifiers and secrets, ints for
// durations and sizes.
type Config struct {
	Env  string // application environment (development/production)
	Port string // HTTP port to listen on

	DBUser string
	DBPass string // optional
	DBHost string
	DBPort string
	DBName string

	AdminEmail        string // the single administrative login identifier
	AdminPasswordHash string // bcrypt hash of the admin password

	JWTSecret    string
	AccessTTLMin int // access token time-to-live in minutes

	SessionSecret       string
	SessionCookieName   string
	SessionMaxAgeSec    int
	SessionCookieSecure bool
	SessionCookieDomain string

	FrontendOrigin     string   // primary SPA origin
	DevelopmentOrigins []string // extra origins, honoured in development only

	UploadsDir  string
	StorageType string // "local" or "s3"

	S3Bucket       string
	S3Region       string
	S3AccessKeyID  string
	S3SecretKey    string
	S3EndpointURL  string // set for R2 / S3-compatible stores
	S3CustomDomain string // public domain serving bucket objects

	GoogleClientID      string
	GoogleClientSecret  string
	GitHubClientID      string
	GitHubClientSecret  string
	TwitterClientID     string
	TwitterClientSecret string
	MetaClientID        string
	MetaClientSecret    string
}

const (
	devJWTSecret     = "dev-secret"
	devSessionSecret = "dev-session-secret"
)

var (
	errFrontendOrigin = errors.New("FRONTEND_ORIGIN must use HTTPS outside development")
	errDevOrigins     = errors.New("DEVELOPMENT_ORIGINS must be empty outside development")
	errJWTSecret      = errors.New("JWT_SECRET must be set to a strong value outside development")
	errSessionSecret  = errors.New("SESSION_SECRET must be set to a strong value outside development")
	errAdminHash      = errors.New("ADMIN_PASSWORD_HASH must be set outside development")
)

// Load reads configuration values from environment variables and returns a
// Config. Secrets that keep their development defaults outside development
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:  getenvDefault("APP_ENV", "development"),
		Port: getenvDefault("APP_PORT", "8000"),

		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),

		AdminEmail:        strings.ToLower(getenvDefault("ADMIN_EMAIL", "admin@example.com")),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		JWTSecret:    getenvDefault("JWT_SECRET", devJWTSecret),
		AccessTTLMin: envIntDefault("ACCESS_TOKEN_TTL_MIN", 60),

		SessionSecret:       getenvDefault("SESSION_SECRET", devSessionSecret),
		SessionCookieName:   getenvDefault("SESSION_COOKIE_NAME", "portfolio_session"),
		SessionMaxAgeSec:    envIntDefault("SESSION_MAX_AGE_SEC", 3600),
		SessionCookieSecure: envBoolDefault("SESSION_COOKIE_SECURE", true),
		SessionCookieDomain: os.Getenv("SESSION_COOKIE_DOMAIN"),

		FrontendOrigin:     getenvDefault("FRONTEND_ORIGIN", "http://127.0.0.1:3000"),
		DevelopmentOrigins: splitList(os.Getenv("DEVELOPMENT_ORIGINS")),

		UploadsDir:  getenvDefault("UPLOADS_DIR", "uploads"),
		StorageType: getenvDefault("STORAGE_TYPE", "local"),

		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       os.Getenv("S3_REGION"),
		S3AccessKeyID:  os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretKey:    os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3EndpointURL:  os.Getenv("S3_ENDPOINT_URL"),
		S3CustomDomain: os.Getenv("S3_CUSTOM_DOMAIN"),

		GoogleClientID:      os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:  os.Getenv("GOOGLE_CLIENT_SECRET"),
		GitHubClientID:      os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret:  os.Getenv("GITHUB_CLIENT_SECRET"),
		TwitterClientID:     os.Getenv("TWITTER_CLIENT_ID"),
		TwitterClientSecret: os.Getenv("TWITTER_CLIENT_SECRET"),
		MetaClientID:        os.Getenv("META_CLIENT_ID"),
		MetaClientSecret:    os.Getenv("META_CLIENT_SECRET"),
	}

	cfg.Env = strings.ToLower(cfg.Env)
	if cfg.SessionMaxAgeSec < 300 {
		cfg.SessionMaxAgeSec = 300
	}
	if cfg.AccessTTLMin < 5 {
		cfg.AccessTTLMin = 5
	}
	cfg.UploadsDir = filepath.Clean(cfg.UploadsDir)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// IsDevelopment reports whether the app runs in development mode.
func (c Config) IsDevelopment() bool { return c.Env == "development" }

// AllowedOrigins returns the CORS origin allow-list: the frontend origin plus,
// in development only, any extra configured origins.
func (c Config) AllowedOrigins() []string {
	seen := map[string]bool{}
	out := []string{strings.TrimRight(c.FrontendOrigin, "/")}
	seen[out[0]] = true
	if c.IsDevelopment() {
		extra := c.DevelopmentOrigins
		if len(extra) == 0 {
			extra = []string{"http://localhost:3000"}
		}
		for _, o := range extra {
			o = strings.TrimRight(o, "/")
			if o != "" && !seen[o] {
				seen[o] = true
				out = append(out, o)
			}
		}
	}
	return out
}

// Validate enforces production hardening rules. Development accepts the
// insecure defaults so the service can boot without a full .env.
func (c Config) Validate() error {
	if c.IsDevelopment() {
		return nil
	}
	u, err := url.Parse(c.FrontendOrigin)
	if err != nil || u.Scheme != "https" {
		return errFrontendOrigin
	}
	if len(c.DevelopmentOrigins) > 0 {
		return errDevOrigins
	}
	if c.JWTSecret == "" || c.JWTSecret == devJWTSecret {
		return errJWTSecret
	}
	if c.SessionSecret == "" || c.SessionSecret == devSessionSecret {
		return errSessionSecret
	}
	if c.AdminPasswordHash == "" {
		return errAdminHash
	}
	return nil
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func envBoolDefault(key string, def bool) bool {
	switch os.Getenv(key) {
	case "":
		return def
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

// splitList parses a comma or newline separated env value into trimmed,
// non-empty tokens.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []string
	for _, chunk := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' }) {
		if item := strings.TrimSpace(chunk); item != "" {
			out = append(out, item)
		}
	}
	return out
}
