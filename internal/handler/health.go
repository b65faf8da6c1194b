package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ofertemutare/ofertemutare/internal/respond"
)

type HealthHandler struct {
	checks map[string]func(ctx context.Context) error
}

// NewHealthHandler probes each named dependency on every health request.
func NewHealthHandler(checks map[string]func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health reports 200 when every dependency answers, 503 otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := healthBody{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for name, ping := range h.checks {
		err := ping(r.Context())
		if err != nil {
			slog.Warn("health check failed", "check", name, "error", err)
			body.Checks[name] = "unavailable"
			body.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		body.Checks[name] = "ok"
	}

	respond.JSON(w, status, body)
}
