package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/myfriendben/screener/internal/domain"
)

// Segment extracts one URL segment from a request.
type Segment func(r *http.Request) string

// URLParam reads the chi route parameter key.
func URLParam(key string) Segment {
	return func(r *http.Request) string { return chi.URLParam(r, key) }
}

// fallbackPath is where a request with an unusable URL restarts the flow.
const fallbackPath = "/" + domain.DefaultLandingPath

// ValidateWhiteLabel passes requests whose white-label segment is registered
// and sends everything else to /step-1 with the original query string.
func ValidateWhiteLabel(reg *domain.Registry, seg Segment) func(http.Handler) http.Handler {
	return guard("invalid_white_label", func(r *http.Request) bool { return reg.IsValid(seg(r)) })
}

// ValidateUUID passes requests whose session-id segment has UUID shape and
// sends everything else to /step-1 with the original query string.
func ValidateUUID(seg Segment) func(http.Handler) http.Handler {
	return guard("invalid_uuid", func(r *http.Request) bool { return domain.IsValidUUID(seg(r)) })
}

func guard(reason string, ok func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ok(r) {
				replace(w, r, fallbackPath+search(r), reason)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
