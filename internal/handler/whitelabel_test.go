package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/handler"
)

func TestListWhiteLabels_200(t *testing.T) {
	rec := serve(newAPI(nil, nil), httptest.NewRequest(http.MethodGet, "/white-labels", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.WhiteLabelList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []domain.WhiteLabel{
		{Code: "_default", DefaultPath: "step-1"},
		{Code: "co", DefaultPath: "step-1"},
		{Code: "cesn", DefaultPath: "landing-page"},
	}, resp.Data)
}
