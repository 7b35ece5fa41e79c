package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/eskiden/marketplace/pkg/httputil"
)

// Recovery converts panics into the generic 500 payload instead of letting
// them kill the connection. http.ErrAbortHandler is re-raised so deliberate
// aborts keep their net/http semantics.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				l.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorBody{Error: "Server error"})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
