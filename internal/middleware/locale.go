package middleware

import (
	"context"
	"net/http"
	"strings"
)

type localeKey struct{}

// LocaleFromContext returns the locale stripped from the URL by NewLocalePrefix.
func LocaleFromContext(ctx context.Context) (string, bool) {
	l, ok := ctx.Value(localeKey{}).(string)
	return l, ok
}

// NewLocalePrefix returns a middleware that removes a leading /{locale}
// segment when it names one of locales, so /es/co/step-1 routes as /co/step-1.
// It must be mounted on the top-level router: chi matches routes against
// r.URL.Path only after mux-level middleware has run.
func NewLocalePrefix(locales []string) func(http.Handler) http.Handler {
	known := make(map[string]bool, len(locales))
	for _, l := range locales {
		known[l] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/")
			seg, tail, _ := strings.Cut(rest, "/")
			if !known[seg] {
				next.ServeHTTP(w, r)
				return
			}

			u := *r.URL
			u.Path = "/" + tail
			u.RawPath = ""

			r2 := r.WithContext(context.WithValue(r.Context(), localeKey{}, seg))
			r2.URL = &u
			next.ServeHTTP(w, r2)
		})
	}
}
