package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/ofertemutare/ofertemutare/internal/ctxkeys"
	"github.com/ofertemutare/ofertemutare/internal/i18n"
	"github.com/ofertemutare/ofertemutare/internal/respond"
)

// Recovery turns a handler panic into a logged 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.Error("panic recovered",
				"error", rec,
				"method", r.Method,
				"path", routeLabel(r.URL.Path),
				"request_id", ctxkeys.RequestID(r.Context()),
				"stack", string(debug.Stack()),
			)
			respond.Error(w, http.StatusInternalServerError, i18n.T(r, i18n.InternalError))
		}()

		next.ServeHTTP(w, r)
	})
}
