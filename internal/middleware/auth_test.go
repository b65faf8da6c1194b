package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofertemutare/ofertemutare/internal/ctxkeys"
	"github.com/ofertemutare/ofertemutare/internal/model"
	"github.com/ofertemutare/ofertemutare/internal/service"
)

const testSecret = "test-secret-with-at-least-32-characters"

func TestBearerAuth(t *testing.T) {
	auth := service.NewAuthService(testSecret)
	token, err := auth.GenerateJWT(&model.Caller{ID: "user-1", Email: "ana@example.com", Role: model.RoleCustomer}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		wantID string
	}{
		{"valid bearer", "Bearer " + token, "user-1"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic " + token, ""},
		{"garbage token", "Bearer not-a-jwt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var caller *model.Caller
			h := BearerAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				caller = ctxkeys.Caller(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if tt.wantID == "" {
				assert.Nil(t, caller)
				return
			}
			require.NotNil(t, caller)
			assert.Equal(t, tt.wantID, caller.ID)
		})
	}
}

func TestRequireCaller(t *testing.T) {
	called := false
	h := RequireCaller(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/api/upload-token", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
	assert.Contains(t, rr.Body.String(), `"error"`)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-token", nil)
	req = req.WithContext(ctxkeys.WithCaller(req.Context(), &model.Caller{ID: "user-1", Role: model.RoleCustomer}))
	rr = httptest.NewRecorder()
	h(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.RequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", seen)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("first"), mw("second"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/requests/r1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error"`)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/upload/{token}", routeLabel("/api/upload/"+strings.Repeat("a", 64)))
	assert.Equal(t, "/api/requests/{id}", routeLabel("/api/requests/r1"))
	assert.Equal(t, "/api/requests/{id}/media", routeLabel("/api/requests/r1/media"))
	assert.Equal(t, "/api/upload-token/validate", routeLabel("/api/upload-token/validate"))
	assert.Equal(t, "/api/upload-token", routeLabel("/api/upload-token"))
	assert.Equal(t, "/api/upload-token/send", routeLabel("/api/upload-token/send"))
	assert.Equal(t, "other", routeLabel("/api/upload-token/"+strings.Repeat("x", 40)))
	assert.Equal(t, "other", routeLabel("/api/upload-tokens"))
	assert.Equal(t, "other", routeLabel("/wp-login.php"))
}

func TestMethodLabel(t *testing.T) {
	assert.Equal(t, http.MethodPost, methodLabel(http.MethodPost))
	assert.Equal(t, "OTHER", methodLabel("FOO"+strings.Repeat("X", 20)))
}
