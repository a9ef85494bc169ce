package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type logAttrsKey struct{}

// logAttrs collects fields a handler wants on its request log line.
type logAttrs struct {
	attrs []any
}

// annotate adds key/value pairs to the current request's log line. It is a
// no-op outside RequestLogging.
func annotate(r *http.Request, args ...any) {
	if la, ok := r.Context().Value(logAttrsKey{}).(*logAttrs); ok {
		la.attrs = append(la.attrs, args...)
	}
}

// RequestLogging logs one line per request with its chi request id, echoed
// back in the X-Request-Id header. Handlers add plan details via annotate.
// Mount it after middleware.RequestID.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())
			if reqID != "" {
				w.Header().Set(middleware.RequestIDHeader, reqID)
			}

			la := &logAttrs{}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), logAttrsKey{}, la)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.Log(r.Context(), level, "request", append(args, la.attrs...)...)
		})
	}
}

// CORS lets browser tools on other origins call the API and read the
// request id.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)
		h.Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
