package routing

import (
	"log/slog"
	"net/http"
	"regexp"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/metrics"
	"github.com/myfriendben/screener/internal/session"
)

// stepPage matches the questionnaire pages, e.g. step-1 .. step-12.
var stepPage = regexp.MustCompile(`^step-[0-9]+$`)

// whiteLabelPages are the sub-pages of /{whiteLabel} that exist before a
// screen has been created.
var whiteLabelPages = map[string]bool{
	"landing-page":        true,
	"select-state":        true,
	"current-benefits":    true,
	"energy-calculator":   true,
	"confirm-information": true,
}

func isWhiteLabelPage(seg string) bool {
	return whiteLabelPages[seg] || stepPage.MatchString(seg)
}

// SPAOptions configures the tenant-less entry points of the app.
type SPAOptions struct {
	// PartnerPaths are paths that always redirect under one white label.
	PartnerPaths map[string]string
	// LandingPages are paths served directly with a fixed white label.
	LandingPages map[string]string
}

// SPA routes client-side URLs, applying the white-label and session rules
// before handing the request to the app shell.
type SPA struct {
	registry *domain.Registry
	restorer *session.Restorer
	legacy   *LegacyRedirector
	shell    http.Handler
	opts     SPAOptions
	log      *slog.Logger
}

// NewSPA constructs an SPA router.
func NewSPA(reg *domain.Registry, restorer *session.Restorer, legacy *LegacyRedirector, shell http.Handler, opts SPAOptions, log *slog.Logger) *SPA {
	return &SPA{registry: reg, restorer: restorer, legacy: legacy, shell: shell, opts: opts, log: log}
}

// Mount registers the SPA routes on r. Static routes take precedence over
// the /{whiteLabel} patterns in chi, so partner paths never reach dispatch.
func (s *SPA) Mount(r chi.Router) {
	entry := s.legacy.Wrap(session.FromURL(""), s.initialize(session.FromURL(""), s.shell))
	r.Get("/", entry.ServeHTTP)
	r.Get("/"+domain.DefaultLandingPath, entry.ServeHTTP)

	for _, path := range sortedPaths(s.opts.PartnerPaths) {
		r.Get(path, s.legacy.Wrap(session.Explicit(s.opts.PartnerPaths[path]), s.shell).ServeHTTP)
	}
	for _, path := range sortedPaths(s.opts.LandingPages) {
		r.Get(path, s.initialize(session.Explicit(s.opts.LandingPages[path]), s.shell).ServeHTTP)
	}

	r.Get("/{whiteLabel}", s.whiteLabelRoot)
	r.Get("/{whiteLabel}/{uuid}", s.dispatch)
	r.Get("/{whiteLabel}/{uuid}/*", s.dispatch)
}

// initialize runs the session initializer and then next.
func (s *SPA) initialize(src session.TenantSource, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session.Initialize(sessionFrom(r), s.registry, src)
		next.ServeHTTP(w, r)
	})
}

// whiteLabelRoot handles single-segment URLs, which are either /:uuid or
// /:whiteLabel. A white label is sent on to its landing page.
func (s *SPA) whiteLabelRoot(w http.ResponseWriter, r *http.Request) {
	first := chi.URLParam(r, "whiteLabel")
	if domain.IsValidUUID(first) {
		s.restore(w, r, first, "")
		return
	}

	landing := s.initialize(session.FromURL(first), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		replace(w, r, "/"+first+"/"+s.registry.DefaultPath(first)+search(r), "white_label_landing")
	}))
	ValidateWhiteLabel(s.registry, URLParam("whiteLabel"))(landing).ServeHTTP(w, r)
}

// dispatch handles two-or-more-segment URLs: /:uuid/..., /:whiteLabel/:uuid/...
// and /:whiteLabel/<page>.
func (s *SPA) dispatch(w http.ResponseWriter, r *http.Request) {
	first, second := chi.URLParam(r, "whiteLabel"), chi.URLParam(r, "uuid")

	if session.Disambiguate(first, second).UUID != "" {
		s.restore(w, r, first, second)
		return
	}

	if isWhiteLabelPage(second) {
		h := s.initialize(session.FromURL(first), s.shell)
		ValidateWhiteLabel(s.registry, URLParam("whiteLabel"))(h).ServeHTTP(w, r)
		return
	}

	// Neither a page nor a session id: the second segment was meant to be a
	// UUID and is malformed.
	ValidateUUID(URLParam("uuid"))(s.shell).ServeHTTP(w, r)
}

// restore runs session restoration and either redirects or serves the app.
func (s *SPA) restore(w http.ResponseWriter, r *http.Request, first, second string) {
	loc := session.Location{Path: r.URL.Path, Search: search(r)}
	st := s.restorer.Restore(r.Context(), sessionFrom(r), first, second, loc)
	metrics.RecordRestore(st.State.String())

	if st.Redirect != "" {
		reason := "screen_reconcile"
		if st.State == session.StateFailed || st.Anomalous() {
			reason = "screen_fallback"
		}
		s.log.DebugContext(r.Context(), "session restore redirect",
			"state", st.State.String(),
			"from", r.URL.Path,
			"to", st.Redirect,
		)
		replace(w, r, st.Redirect, reason)
		return
	}

	uuid := st.Resolution.UUID
	ValidateUUID(func(*http.Request) string { return uuid })(s.shell).ServeHTTP(w, r)
}

func sortedPaths(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
