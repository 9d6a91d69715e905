// Package handler implements the JSON API. All handlers are methods on
// Server and are split by resource (health.go, screen.go, and so on).
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/myfriendben/screener/internal/domain"
)

// ScreenServicer defines the screen operations the handlers depend on.
type ScreenServicer interface {
	Create(ctx context.Context, whiteLabel, referrer, locale string) (domain.Screen, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Screen, error)
}

// RebateServicer defines the rebate lookup the handlers depend on.
type RebateServicer interface {
	Lookup(ctx context.Context, q domain.RebateQuery) ([]domain.RebateCategory, error)
}

// Server holds the dependencies shared by every API handler.
type Server struct {
	screens  ScreenServicer
	rebates  RebateServicer
	registry *domain.Registry
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(screens ScreenServicer, rebates RebateServicer, reg *domain.Registry, log *slog.Logger) *Server {
	return &Server{screens: screens, rebates: rebates, registry: reg, log: log}
}

// APIRoutes returns the routes served under /api. CORS and body limits are
// applied by the caller.
func (s *Server) APIRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/screens", s.CreateScreen)
	r.Get("/screens/{uuid}", s.GetScreen)
	r.Get("/white-labels", s.ListWhiteLabels)
	r.Get("/rebates", s.GetRebates)
	return r
}

// internalError logs err and answers 500 without leaking its text.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
}
