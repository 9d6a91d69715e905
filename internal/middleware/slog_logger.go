package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/myfriendben/screener/internal/session"
)

// NewSlogLogger returns a middleware that logs each request as a structured
// JSON line via the provided slog.Logger. It captures method, path, HTTP
// status, duration, redirect target, and the request ID set by chi's
// RequestID middleware. When the session middleware ran, the active white
// label is logged too.
//
// Wire it after chimiddleware.RequestID so the request ID is available.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// WrapResponseWriter intercepts WriteHeader so we can read the
			// status code after the downstream handler has run.
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			// The session middleware runs further down the chain, so it
			// publishes the context through this holder.
			holder := &sessionHolder{}
			r = r.WithContext(withSessionHolder(r.Context(), holder))

			next.ServeHTTP(ww, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			}
			if loc := ww.Header().Get("Location"); loc != "" {
				attrs = append(attrs, "location", loc)
			}
			if holder.sess != nil && holder.sess.WhiteLabel() != "" {
				attrs = append(attrs, "white_label", holder.sess.WhiteLabel())
			}
			log.InfoContext(r.Context(), "request", attrs...)
		})
	}
}

type sessionHolder struct {
	sess *session.Context
}
