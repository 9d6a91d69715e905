package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/myfriendben/screener/internal/domain"
)

// CreateScreenRequest is the body of POST /api/screens.
type CreateScreenRequest struct {
	WhiteLabel string  `json:"white_label"`
	Referrer   *string `json:"referrer,omitempty"`
	Locale     *string `json:"locale,omitempty"`
}

// Screen is the API representation of domain.Screen.
type Screen struct {
	UUID       openapi_types.UUID `json:"uuid"`
	WhiteLabel string             `json:"white_label"`
	Referrer   *string            `json:"referrer,omitempty"`
	Locale     *string            `json:"locale,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// CreateScreen handles POST /api/screens.
func (s *Server) CreateScreen(w http.ResponseWriter, r *http.Request) {
	var body CreateScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be a JSON object"))
		return
	}

	created, err := s.screens.Create(r.Context(), body.WhiteLabel, deref(body.Referrer), deref(body.Locale))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, screenToResponse(created))
}

// GetScreen handles GET /api/screens/{uuid}.
func (s *Server) GetScreen(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "uuid")
	if !domain.IsValidUUID(raw) {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("uuid is malformed"))
		return
	}
	// IsValidUUID already admits only the canonical form.
	id := uuid.MustParse(raw)

	screen, err := s.screens.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("screen not found"))
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, screenToResponse(screen))
}

// --- mapping helpers --------------------------------------------------------

func screenToResponse(sc domain.Screen) Screen {
	resp := Screen{
		UUID:       sc.UUID,
		WhiteLabel: sc.WhiteLabel,
		CreatedAt:  sc.CreatedAt,
		UpdatedAt:  sc.UpdatedAt,
	}
	if sc.Referrer != "" {
		resp.Referrer = &sc.Referrer
	}
	if sc.Locale != "" {
		resp.Locale = &sc.Locale
	}
	return resp
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
