// Package metrics exposes Prometheus counters for the public endpoints.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route, and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ofertemutare_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency by method and route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ofertemutare_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RateLimitedTotal counts calls blocked by a named limiter
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ofertemutare_rate_limited_total",
			Help: "Total number of requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)

	// UploadTokensIssuedTotal counts issued upload tokens
	UploadTokensIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ofertemutare_upload_tokens_issued_total",
			Help: "Total number of media upload tokens issued",
		},
	)

	// UploadTokenValidationsTotal counts validations by result (valid, not_found, already_used, expired)
	UploadTokenValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ofertemutare_upload_token_validations_total",
			Help: "Total number of upload token validations by result",
		},
		[]string{"result"},
	)

	// MediaUploadsTotal counts upload batches by status (success, rejected, failure)
	MediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ofertemutare_media_uploads_total",
			Help: "Total number of media upload batches by status",
		},
		[]string{"status"},
	)

	// MediaUploadBytes observes stored bytes per upload batch
	MediaUploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ofertemutare_media_upload_bytes",
			Help:    "Bytes stored per media upload batch",
			Buckets: prometheus.ExponentialBuckets(1<<20, 2, 10), // 1MB .. 512MB
		},
	)

	// EmailsSentTotal counts outbound emails by type and status
	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ofertemutare_emails_sent_total",
			Help: "Total number of outbound emails by type and status",
		},
		[]string{"type", "status"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
