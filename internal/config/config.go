package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// RateLimit is the fixed-window budget of one named limiter.
type RateLimit struct {
	Max    int
	Window time.Duration
}

type Config struct {
	// Application
	AppName      string
	AppEnv       string
	AppURL       string
	Port         string
	SupportEmail string

	// Database (driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret         string
	UploadTokenExpiry time.Duration
	TrustProxyHeaders string // "auto" (only from TrustedProxyIPs), "true" or "false"
	TrustedProxyIPs   string // comma-separated IPs and CIDR ranges of the load balancer

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage: "s3" (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.) or "memory" (development only)
	StorageDriver   string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration

	// Rate limits for the public endpoints, one budget per limiter name
	RateLimitIssue         RateLimit
	RateLimitValidate      RateLimit
	RateLimitSend          RateLimit
	RateLimitUpload        RateLimit
	RateLimitSweepInterval time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName:      envString("APP_NAME", "OferteMutare.ro"),
		AppEnv:       envRequired("APP_ENV"), // 'development' or 'production'
		AppURL:       strings.TrimSuffix(envRequired("APP_URL"), "/"),
		Port:         envString("PORT", "8090"),
		SupportEmail: envString("SUPPORT_EMAIL", "contact@ofertemutare.ro"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/ofertemutare.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"),

		JWTSecret:         envRequired("JWT_SECRET"),
		UploadTokenExpiry: envDuration("UPLOAD_TOKEN_EXPIRY", 7*24*time.Hour),
		TrustProxyHeaders: envChoice("TRUST_PROXY_HEADERS", "auto", "auto", "true", "false"),
		TrustedProxyIPs:   envString("TRUSTED_PROXY_IPS", "127.0.0.1,::1"),

		// RESEND_API_KEY optional in development, required in production
		EmailFrom:    envString("EMAIL_FROM", "OferteMutare.ro <noreply@ofertemutare.ro>"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		SentryDSN: envString("SENTRY_DSN", ""),

		StorageDriver:   envString("STORAGE_DRIVER", "s3"),
		S3Region:        envString("S3_REGION", "eu-central-1"),
		S3Bucket:        envString("S3_BUCKET", "ofertemutare-media"),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", time.Hour),

		RateLimitIssue:         envRateLimit("RATE_LIMIT_ISSUE", 10, 15*time.Minute),
		RateLimitValidate:      envRateLimit("RATE_LIMIT_VALIDATE", 30, time.Minute),
		RateLimitSend:          envRateLimit("RATE_LIMIT_SEND", 5, 15*time.Minute),
		RateLimitUpload:        envRateLimit("RATE_LIMIT_UPLOAD", 10, time.Hour),
		RateLimitSweepInterval: envDuration("RATE_LIMIT_SWEEP_INTERVAL", 5*time.Minute),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development falls back to logging emails instead of sending them.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.StorageDriver != "s3" {
		slog.Error("production deployment requires STORAGE_DRIVER=s3", "storage_driver", cfg.StorageDriver)
		os.Exit(1)
	}
	if cfg.TrustProxyHeaders == "true" {
		slog.Warn("TRUST_PROXY_HEADERS=true lets clients pick their rate limit identity",
			"hint", "use auto with TRUSTED_PROXY_IPS set to the load balancer addresses")
	}
	if len(cfg.JWTSecret) < 32 {
		slog.Error("production deployment requires JWT_SECRET of at least 32 characters")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

// envChoice returns the value of key when it is one of allowed, def otherwise.
func envChoice(key, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	slog.Warn("config invalid value, using default", "key", key, "value", v, "allowed", allowed, "default", def)
	return def
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid positive int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envRateLimit reads <prefix>_MAX and <prefix>_WINDOW.
func envRateLimit(prefix string, defMax int, defWindow time.Duration) RateLimit {
	return RateLimit{
		Max:    envInt(prefix+"_MAX", defMax),
		Window: envDuration(prefix+"_WINDOW", defWindow),
	}
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
