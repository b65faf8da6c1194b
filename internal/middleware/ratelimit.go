package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ofertemutare/ofertemutare/internal/ctxkeys"
	"github.com/ofertemutare/ofertemutare/internal/i18n"
	"github.com/ofertemutare/ofertemutare/internal/metrics"
	"github.com/ofertemutare/ofertemutare/internal/respond"
)

// RateLimitConfig configures one named fixed-window limiter.
type RateLimitConfig struct {
	Name          string        // unique per limiter, prefixes every bucket key
	Max           int           // calls allowed per window
	Window        time.Duration // window length
	SweepInterval time.Duration // 0 disables the background sweeper
	Now           func() time.Time
}

type bucket struct {
	count       int
	windowStart time.Time
}

// RateLimiter counts calls per client in fixed, non-overlapping windows.
// State is process-local and lost on restart.
type RateLimiter struct {
	name   string
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter and starts its sweeper when
// SweepInterval is set. Callers must Stop it when done.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Max <= 0 {
		panic("middleware: rate limiter " + cfg.Name + " needs Max > 0")
	}
	if cfg.Window <= 0 {
		panic("middleware: rate limiter " + cfg.Name + " needs Window > 0")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	rl := &RateLimiter{
		name:    cfg.Name,
		max:     cfg.Max,
		window:  cfg.Window,
		now:     cfg.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}

	if cfg.SweepInterval > 0 {
		go rl.sweepLoop(cfg.SweepInterval)
	}

	return rl
}

func (rl *RateLimiter) Name() string {
	return rl.name
}

// Check counts a call for clientID and reports whether it is over the
// limit (true = blocked).
func (rl *RateLimiter) Check(clientID string) bool {
	key := rl.name + ":" + clientID
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.windowStart) >= rl.window {
		rl.buckets[key] = &bucket{count: 1, windowStart: now}
		return false
	}

	b.count++
	return b.count > rl.max
}

// Sweep drops buckets whose window has ended and returns how many were removed.
func (rl *RateLimiter) Sweep() int {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, b := range rl.buckets {
		if now.Sub(b.windowStart) >= rl.window {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// Stop ends the background sweeper. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
	})
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

func (rl *RateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := rl.Sweep(); n > 0 {
				slog.Debug("rate limiter swept", "limiter", rl.name, "removed", n)
			}
		case <-rl.stop:
			return
		}
	}
}

// RateLimitBody is the 429 response shape.
type RateLimitBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RateLimit blocks callers over the limiter's budget with 429.
// The client is the IP stored by RealIP, or the connection address.
func RateLimit(l *RateLimiter) func(http.HandlerFunc) http.HandlerFunc {
	retryAfter := strconv.Itoa(int(l.window.Round(time.Second) / time.Second))

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := ctxkeys.ClientIP(r.Context())
			if ip == "" {
				ip = remoteIP(r)
			}

			if l.Check(ip) {
				metrics.RateLimitedTotal.WithLabelValues(l.name).Inc()
				slog.Warn("rate limit exceeded",
					"limiter", l.name,
					"ip", ip,
					"path", r.URL.Path,
				)
				w.Header().Set("Retry-After", retryAfter)
				respond.JSON(w, http.StatusTooManyRequests, RateLimitBody{
					Success: false,
					Error:   i18n.T(r, i18n.RateLimited),
				})
				return
			}

			next(w, r)
		}
	}
}

// ProxyTrust decides whether X-Forwarded-For and X-Real-IP are honored.
// In "auto" mode they are only read when the connection comes from one of
// the configured proxy addresses.
type ProxyTrust struct {
	mode    string
	proxies []*net.IPNet
}

// NewProxyTrust parses mode ("auto", "true", "false") and a comma-separated
// list of IPs and CIDR ranges. Unknown modes fall back to "auto".
func NewProxyTrust(mode, trustedProxies string) ProxyTrust {
	pt := ProxyTrust{mode: mode}
	if mode != "true" && mode != "false" {
		pt.mode = "auto"
	}

	for _, entry := range strings.Split(trustedProxies, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil {
				bits := 8 * len(ip.To16())
				if ip.To4() != nil {
					ip, bits = ip.To4(), 32
				}
				pt.proxies = append(pt.proxies, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
				continue
			}
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			slog.Warn("ignoring invalid trusted proxy", "entry", entry)
			continue
		}
		pt.proxies = append(pt.proxies, ipNet)
	}

	return pt
}

// Trusts reports whether proxy headers from a connection at remote are honored.
func (pt ProxyTrust) Trusts(remote string) bool {
	switch pt.mode {
	case "true":
		return true
	case "false":
		return false
	}

	ip := net.ParseIP(remote)
	if ip == nil {
		return false
	}
	for _, n := range pt.proxies {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// RealIP stores the client IP in the request context. Proxy headers are
// only read when trust allows it for the connecting address.
func RealIP(trust ProxyTrust) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := remoteIP(r)
			if trust.Trusts(ip) {
				ip = ClientIP(r)
			}
			next.ServeHTTP(w, r.WithContext(ctxkeys.WithClientIP(r.Context(), ip)))
		})
	}
}

// ClientIP extracts the client IP from proxy headers: the first
// X-Forwarded-For entry, then X-Real-IP, then RemoteAddr without port.
// Only call it for requests from a trusted proxy.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return remoteIP(r)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
