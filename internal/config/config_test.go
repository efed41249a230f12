package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "pasta")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "pastafresca")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "development")
	t.Setenv("MP_ACCESS_TOKEN", "TEST-token")
	t.Setenv("PUBLIC_BASE_URL", "https://pastafresca.example")
	t.Setenv("MP_WEBHOOK_SECRET", "hook-secret")
	t.Setenv("SECRET_KEY", "jwt-secret")

	cfg := LoadConfig()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "pastafresca", cfg.DBName)
	assert.Equal(t, "TEST-token", cfg.MPAccessToken)
	assert.Equal(t, "https://pastafresca.example", cfg.PublicBaseURL)
	assert.Equal(t, "hook-secret", cfg.WebhookSecret)
	assert.Equal(t, "jwt-secret", cfg.JWTSecret)
}
