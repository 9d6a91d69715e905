package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/myfriendben/screener/internal/config"
	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/handler"
	"github.com/myfriendben/screener/internal/metrics"
	"github.com/myfriendben/screener/internal/middleware"
	"github.com/myfriendben/screener/internal/routing"
	"github.com/myfriendben/screener/internal/session"
	"github.com/myfriendben/screener/spec"
)

// maxAPIBody bounds JSON request bodies under /api.
const maxAPIBody = 1 << 20

// rootAssets are build files served from / rather than /static.
var rootAssets = []string{
	"favicon.ico", "manifest.json", "asset-manifest.json", "robots.txt", "logo192.png", "logo512.png",
}

type routerDeps struct {
	cfg      config.Config
	tables   config.Tables
	registry *domain.Registry
	api      *handler.Server
	screens  session.ScreenFetcher
	store    session.Store
	log      *slog.Logger
}

// newRouter assembles the full HTTP surface.
//
// Middleware order: RequestID → RealIP → Logger → Recoverer → LocalePrefix.
// The locale prefix is stripped before chi matches a route. The SPA group
// then loads the session, records the referrer and applies the custom
// domain redirect ahead of every client-side route.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(d.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewLocalePrefix(d.tables.Locales))

	r.Get("/healthz", d.api.GetHealth)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCORSHandler(d.cfg.CORSOrigins))
		r.Use(middleware.NewMaxBodySizeHandler(maxAPIBody))
		r.Mount("/", d.api.APIRoutes())
	})

	shell := routing.NewShell(d.cfg.StaticDir)
	assets := shell.Assets()
	r.Handle("/static/*", assets)
	for _, name := range rootAssets {
		r.Handle("/"+name, assets)
	}

	domains := routing.NewDomainResolver(d.tables.CustomDomains, d.registry)
	spa := routing.NewSPA(
		d.registry,
		session.NewRestorer(d.registry, d.screens, d.log),
		routing.NewLegacyRedirector(d.tables.LegacyReferrers),
		shell,
		routing.SPAOptions{PartnerPaths: d.tables.PartnerPaths, LandingPages: d.tables.LandingPages},
		d.log,
	)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSession(d.store, d.log, d.cfg.SecureCookies))
		r.Use(middleware.NewReferrerCapture())
		r.Use(domains.Middleware)
		spa.Mount(r)
	})

	return r
}
