package handler

import (
	"errors"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/myfriendben/screener/internal/domain"
)

// RebateResponse is the body of GET /api/rebates.
type RebateResponse struct {
	Categories []domain.RebateCategory `json:"categories"`
}

// GetRebates handles GET /api/rebates. Parameters use form style with
// exploded arrays, so items repeats: ?items=a&items=b.
func (s *Server) GetRebates(w http.ResponseWriter, r *http.Request) {
	q, err := bindRebateQuery(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	cats, err := s.rebates.Lookup(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		case errors.Is(err, domain.ErrUpstream):
			s.log.WarnContext(r.Context(), "rebate provider failed", "error", err)
			writeJSON(w, http.StatusBadGateway, upstreamBody())
		default:
			s.internalError(w, r, err)
		}
		return
	}
	if cats == nil {
		cats = []domain.RebateCategory{}
	}
	writeJSON(w, http.StatusOK, RebateResponse{Categories: cats})
}

func bindRebateQuery(r *http.Request) (domain.RebateQuery, error) {
	var q domain.RebateQuery
	params := r.URL.Query()
	bindings := []struct {
		name string
		dest any
	}{
		{"zip", &q.Zip},
		{"owner_status", &q.OwnerStatus},
		{"household_income", &q.HouseholdIncome},
		{"tax_filing", &q.TaxFiling},
		{"household_size", &q.HouseholdSize},
		{"utility", &q.Utility},
		{"gas_utility", &q.GasUtility},
		{"language", &q.Language},
		{"items", &q.Items},
	}
	for _, b := range bindings {
		// Presence rules live in the service's validator.
		if err := runtime.BindQueryParameter("form", true, false, b.name, params, b.dest); err != nil {
			return domain.RebateQuery{}, err
		}
	}
	return q, nil
}
