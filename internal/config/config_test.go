package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_URL", "http://localhost:8090/")
	t.Setenv("JWT_SECRET", "dev-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "http://localhost:8090", cfg.AppURL)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.UploadTokenExpiry)
	assert.Equal(t, "auto", cfg.TrustProxyHeaders)
	assert.Equal(t, "127.0.0.1,::1", cfg.TrustedProxyIPs)
	assert.Equal(t, RateLimit{Max: 10, Window: 15 * time.Minute}, cfg.RateLimitIssue)
	assert.Equal(t, RateLimit{Max: 30, Window: time.Minute}, cfg.RateLimitValidate)
	assert.Equal(t, RateLimit{Max: 5, Window: 15 * time.Minute}, cfg.RateLimitSend)
	assert.Equal(t, RateLimit{Max: 10, Window: time.Hour}, cfg.RateLimitUpload)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_VALIDATE_MAX", "3")
	t.Setenv("RATE_LIMIT_VALIDATE_WINDOW", "60s")
	t.Setenv("UPLOAD_TOKEN_EXPIRY", "48h")
	t.Setenv("TRUST_PROXY_HEADERS", "False")
	t.Setenv("TRUSTED_PROXY_IPS", "10.0.0.0/8")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg := Load()

	assert.Equal(t, RateLimit{Max: 3, Window: time.Minute}, cfg.RateLimitValidate)
	assert.Equal(t, 48*time.Hour, cfg.UploadTokenExpiry)
	assert.Equal(t, "false", cfg.TrustProxyHeaders)
	assert.Equal(t, "10.0.0.0/8", cfg.TrustedProxyIPs)
	assert.Equal(t, "memory", cfg.StorageDriver)
}

func TestEnvHelpers_FallBackOnInvalid(t *testing.T) {
	t.Setenv("TEST_INT", "-4")
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_CHOICE", "maybe")

	assert.Equal(t, 7, envInt("TEST_INT", 7))
	assert.Equal(t, time.Minute, envDuration("TEST_DURATION", time.Minute))
	assert.Equal(t, "auto", envChoice("TEST_CHOICE", "auto", "auto", "true", "false"))
	assert.Equal(t, "fallback", envString("TEST_UNSET_STRING", "fallback"))
}
