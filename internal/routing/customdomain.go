// Package routing implements the URL rules that run before and around the
// single-page app: custom-domain redirects, white-label and session-id guards,
// legacy referrer redirects and the dispatch of SPA deep links.
//
// Every redirect is a 302 so the invalid or unscoped URL never becomes a
// history entry, which is what history-replace navigation does in the browser.
package routing

import (
	"net"
	"net/http"
	"strings"

	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/metrics"
)

// DomainResolver maps partner hostnames onto white labels.
type DomainResolver struct {
	domains  map[string]string
	registry *domain.Registry
}

// NewDomainResolver constructs a DomainResolver. Hosts in domains must be
// listed without a "www." prefix.
func NewDomainResolver(domains map[string]string, reg *domain.Registry) *DomainResolver {
	return &DomainResolver{domains: domains, registry: reg}
}

// ResolveRedirect returns the location a request on hostname should be sent
// to, or false when no redirect applies: the host is not a custom domain, or
// the path is already scoped to the host's white label.
// search and hash are copied verbatim, including their "?" and "#".
func (d *DomainResolver) ResolveRedirect(hostname, path, search, hash string) (string, bool) {
	host := strings.TrimPrefix(hostname, "www.")
	code, ok := d.domains[host]
	if !ok {
		return "", false
	}

	base := "/" + code
	if path == base || strings.HasPrefix(path, base+"/") {
		return "", false
	}

	target := path
	if path == "/" {
		target = "/" + d.registry.DefaultPath(code)
	}
	return base + target + search + hash, true
}

// Middleware applies ResolveRedirect to every request before routing.
// Fragments never reach the server; browsers carry them across the redirect.
func (d *DomainResolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if target, ok := d.ResolveRedirect(hostOnly(r.Host), r.URL.Path, search(r), ""); ok {
			replace(w, r, target, "custom_domain")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// hostOnly strips the port and lowercases the host header.
func hostOnly(hostport string) string {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	return strings.ToLower(host)
}

// search returns the raw query with its leading "?", or "".
func search(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}

// replace issues a redirect that replaces the current navigation.
func replace(w http.ResponseWriter, r *http.Request, target, reason string) {
	metrics.RecordRedirect(reason)
	http.Redirect(w, r, target, http.StatusFound)
}
