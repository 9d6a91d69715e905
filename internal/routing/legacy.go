package routing

import (
	"net/http"

	"github.com/myfriendben/screener/internal/session"
)

// DecisionKind is what RedirectToWhiteLabel does with a request.
type DecisionKind int

const (
	// DecisionWait renders nothing: the referrer has not been captured yet.
	DecisionWait DecisionKind = iota
	// DecisionRedirect sends the request under a white label.
	DecisionRedirect
	// DecisionRender hands the request to the wrapped handler.
	DecisionRender
)

// Decision is the outcome of LegacyRedirector.Decide.
type Decision struct {
	Kind   DecisionKind
	Target string
}

// LegacyRedirector sends tenant-less entry points to the white label implied
// by an explicit route override or by a pre-white-label referrer code.
type LegacyRedirector struct {
	referrers map[string]string
}

// NewLegacyRedirector constructs a LegacyRedirector over the referrer table.
func NewLegacyRedirector(referrers map[string]string) *LegacyRedirector {
	return &LegacyRedirector{referrers: referrers}
}

// Decide applies, in order: an explicit override always redirects; an
// uncaptured referrer waits; a legacy referrer redirects; anything else
// renders. The wait check must come before the table lookup, otherwise a
// pending capture would fall through to a render.
func (l *LegacyRedirector) Decide(src session.TenantSource, sess *session.Context, path, search string) Decision {
	if src.IsExplicit() {
		return Decision{Kind: DecisionRedirect, Target: underWhiteLabel(src.Resolve(), path) + search}
	}

	ref, recorded := sess.Referrer()
	if !recorded {
		return Decision{Kind: DecisionWait}
	}

	if code, ok := l.referrers[ref]; ok {
		return Decision{Kind: DecisionRedirect, Target: underWhiteLabel(code, path) + search}
	}
	return Decision{Kind: DecisionRender}
}

// Wrap returns a handler that applies Decide before next.
func (l *LegacyRedirector) Wrap(src session.TenantSource, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := l.Decide(src, sessionFrom(r), r.URL.Path, search(r))
		switch d.Kind {
		case DecisionRedirect:
			reason := "legacy_referrer"
			if src.IsExplicit() {
				reason = "partner_path"
			}
			replace(w, r, d.Target, reason)
		case DecisionWait:
			w.WriteHeader(http.StatusNoContent)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// underWhiteLabel prefixes path with /code, folding the root path into it.
func underWhiteLabel(code, path string) string {
	if path == "" || path == "/" {
		return "/" + code
	}
	return "/" + code + path
}

// sessionFrom returns the request's session context, or a throwaway one when
// the session middleware is not mounted.
func sessionFrom(r *http.Request) *session.Context {
	if sess, ok := session.FromContext(r.Context()); ok {
		return sess
	}
	return session.New()
}
