package handler

import (
	"net/http"

	"github.com/myfriendben/screener/internal/domain"
)

// WhiteLabelList is the body of GET /api/white-labels.
type WhiteLabelList struct {
	Data []domain.WhiteLabel `json:"data"`
}

// ListWhiteLabels handles GET /api/white-labels.
func (s *Server) ListWhiteLabels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, WhiteLabelList{Data: s.registry.All()})
}
