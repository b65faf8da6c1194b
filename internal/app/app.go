package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/ofertemutare/ofertemutare/internal/config"
	"github.com/ofertemutare/ofertemutare/internal/db"
	"github.com/ofertemutare/ofertemutare/internal/middleware"
	"github.com/ofertemutare/ofertemutare/internal/repository"
	"github.com/ofertemutare/ofertemutare/internal/service"
	"github.com/ofertemutare/ofertemutare/internal/storage"
)

// Limiter names, unique per process.
const (
	LimiterIssue    = "upload-token-issue"
	LimiterValidate = "upload-token-validate"
	LimiterSend     = "upload-token-send"
	LimiterUpload   = "media-upload"
)

type Limiters struct {
	Issue    *middleware.RateLimiter
	Validate *middleware.RateLimiter
	Send     *middleware.RateLimiter
	Upload   *middleware.RateLimiter
}

func (l *Limiters) all() []*middleware.RateLimiter {
	return []*middleware.RateLimiter{l.Issue, l.Validate, l.Send, l.Upload}
}

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	Storage            storage.Storage
	AuthService        *service.AuthService
	RequestService     *service.RequestService
	UploadTokenService *service.UploadTokenService
	MediaService       *service.MediaService
	EmailService       *service.EmailService
	Limiters           *Limiters

	// HealthChecks are probed by GET /healthz
	HealthChecks map[string]func(ctx context.Context) error
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	healthChecks := map[string]func(ctx context.Context) error{
		"database": func(ctx context.Context) error { return db.Ping(ctx, database) },
	}

	// Storage
	var mediaStorage storage.Storage
	switch cfg.StorageDriver {
	case "memory":
		slog.Warn("using in-memory media storage, uploads are lost on restart")
		mediaStorage = storage.NewMemoryStorage(cfg.AppURL + "/media")
	default:
		s3Storage, err := storage.New(ctx, cfg)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		healthChecks["storage"] = s3Storage.Ping
		mediaStorage = s3Storage
	}

	// Repositories
	requestRepository := repository.NewMovingRequestRepository(database)
	uploadTokenRepository := repository.NewUploadTokenRepository(database)
	mediaRepository := repository.NewMediaRepository(database)

	// Services
	authService := service.NewAuthService(cfg.JWTSecret)
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.SupportEmail,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	requestService := service.NewRequestService(requestRepository)
	uploadTokenService := service.NewUploadTokenService(uploadTokenRepository, cfg.AppURL, cfg.UploadTokenExpiry)
	mediaService := service.NewMediaService(uploadTokenService, mediaRepository, mediaStorage)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		Storage:            mediaStorage,
		AuthService:        authService,
		RequestService:     requestService,
		UploadTokenService: uploadTokenService,
		MediaService:       mediaService,
		EmailService:       emailService,
		Limiters:           NewLimiters(cfg),
		HealthChecks:       healthChecks,
	}, nil
}

// NewLimiters creates one fixed-window limiter per public endpoint.
func NewLimiters(cfg *config.Config) *Limiters {
	limiter := func(name string, rl config.RateLimit) *middleware.RateLimiter {
		return middleware.NewRateLimiter(middleware.RateLimitConfig{
			Name:          name,
			Max:           rl.Max,
			Window:        rl.Window,
			SweepInterval: cfg.RateLimitSweepInterval,
		})
	}

	return &Limiters{
		Issue:    limiter(LimiterIssue, cfg.RateLimitIssue),
		Validate: limiter(LimiterValidate, cfg.RateLimitValidate),
		Send:     limiter(LimiterSend, cfg.RateLimitSend),
		Upload:   limiter(LimiterUpload, cfg.RateLimitUpload),
	}
}

// Stop ends every limiter's sweeper.
func (l *Limiters) Stop() {
	for _, rl := range l.all() {
		rl.Stop()
	}
}

func (a *App) Close() error {
	if a.Limiters != nil {
		a.Limiters.Stop()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
