package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func productionConfig() Config {
	return Config{
		Env:               "production",
		FrontendOrigin:    "https://example.com",
		JWTSecret:         "a-real-secret",
		SessionSecret:     "another-real-secret",
		AdminPasswordHash: "$2a$10$hash",
	}
}

func TestValidateDevelopmentAcceptsDefaults(t *testing.T) {
	cfg := Config{
		Env:            "development",
		FrontendOrigin: "http://127.0.0.1:3000",
		JWTSecret:      devJWTSecret,
		SessionSecret:  devSessionSecret,
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidateProductionPasses(t *testing.T) {
	assert.NoError(t, productionConfig().Validate())
}

func TestValidateProductionRejectsHTTPFrontend(t *testing.T) {
	cfg := productionConfig()
	cfg.FrontendOrigin = "http://example.com"
	assert.ErrorIs(t, cfg.Validate(), errFrontendOrigin)
}

func TestValidateProductionRejectsDevSecrets(t *testing.T) {
	cfg := productionConfig()
	cfg.JWTSecret = devJWTSecret
	assert.ErrorIs(t, cfg.Validate(), errJWTSecret)

	cfg = productionConfig()
	cfg.SessionSecret = devSessionSecret
	assert.ErrorIs(t, cfg.Validate(), errSessionSecret)
}

func TestValidateProductionRequiresAdminHash(t *testing.T) {
	cfg := productionConfig()
	cfg.AdminPasswordHash = ""
	assert.ErrorIs(t, cfg.Validate(), errAdminHash)
}

func TestValidateProductionRejectsDevOrigins(t *testing.T) {
	cfg := productionConfig()
	cfg.DevelopmentOrigins = []string{"http://localhost:3000"}
	assert.ErrorIs(t, cfg.Validate(), errDevOrigins)
}

func TestAllowedOriginsDevelopment(t *testing.T) {
	cfg := Config{
		Env:                "development",
		FrontendOrigin:     "http://127.0.0.1:3000/",
		DevelopmentOrigins: []string{"http://localhost:5173", "http://127.0.0.1:3000"},
	}
	got := cfg.AllowedOrigins()
	assert.Equal(t, []string{"http://127.0.0.1:3000", "http://localhost:5173"}, got)
}

func TestAllowedOriginsProductionIgnoresExtras(t *testing.T) {
	cfg := productionConfig()
	cfg.DevelopmentOrigins = nil
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(" "))
	assert.Equal(t, []string{"a", "b", "c"}, splitList("a, b\nc"))
}
