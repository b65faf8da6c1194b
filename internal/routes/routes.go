package routes

import (
	"net/http"

	"github.com/ofertemutare/ofertemutare/internal/app"
	"github.com/ofertemutare/ofertemutare/internal/handler"
	"github.com/ofertemutare/ofertemutare/internal/metrics"
	"github.com/ofertemutare/ofertemutare/internal/middleware"
	"github.com/ofertemutare/ofertemutare/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.HealthChecks)
	requests := handler.NewRequestHandler(app.RequestService, app.MediaService, app.EmailService)
	uploadTokens := handler.NewUploadTokenHandler(app.UploadTokenService, app.RequestService, app.EmailService)
	upload := handler.NewUploadHandler(app.MediaService)

	// Rate limiters
	issueLimit := middleware.RateLimit(app.Limiters.Issue)
	validateLimit := middleware.RateLimit(app.Limiters.Validate)
	sendLimit := middleware.RateLimit(app.Limiters.Send)
	uploadLimit := middleware.RateLimit(app.Limiters.Upload)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Operations
	mux.HandleFunc("GET /healthz", health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Development media (presigned URLs of in-memory storage)
	if mem, ok := app.Storage.(*storage.MemoryStorage); ok {
		mux.HandleFunc("GET /media/{path...}", handler.NewMediaFileHandler(mem).Serve)
	}

	// Upload page (customer holds only the emailed token)
	mux.HandleFunc("GET /api/upload-token/validate", validateLimit(uploadTokens.Validate))
	mux.HandleFunc("POST /api/upload/{token}", uploadLimit(upload.Upload))

	// ============================================================================
	// BEARER ROUTES
	// ============================================================================

	// Moving requests
	mux.HandleFunc("POST /api/requests", middleware.RequireCaller(requests.Create))
	mux.HandleFunc("GET /api/requests", middleware.RequireCaller(requests.List))
	mux.HandleFunc("GET /api/requests/{id}", middleware.RequireCaller(requests.Get))
	mux.HandleFunc("GET /api/requests/{id}/media", middleware.RequireCaller(requests.Media))

	// Upload links (owner or admin, checked per request)
	mux.HandleFunc("POST /api/upload-token", middleware.Route(uploadTokens.Issue, issueLimit, middleware.RequireCaller))
	mux.HandleFunc("POST /api/upload-token/send", middleware.Route(uploadTokens.Send, sendLimit, middleware.RequireCaller))

	// Apply global middleware
	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Recovery,
		middleware.RealIP(middleware.NewProxyTrust(app.Cfg.TrustProxyHeaders, app.Cfg.TrustedProxyIPs)),
		middleware.RequestLogging,
		middleware.BearerAuth(app.AuthService),
	)
}
