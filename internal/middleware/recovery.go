package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"convertify/internal/httputil"
)

// Recovery turns a panic in a downstream handler into the standard
// success=false failure body.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
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

				logger.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", httputil.GetUserID(r),
					"stack", string(debug.Stack()),
				)
				httputil.RespondErrorWithExtras(w, http.StatusInternalServerError, "internal server error",
					map[string]any{"success": false, "error": "internal server error"})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
