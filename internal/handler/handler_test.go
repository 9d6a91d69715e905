package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/handler"
)

// mockScreenServicer is a test double for handler.ScreenServicer.
// Set only the method fields your test needs.
type mockScreenServicer struct {
	create func(ctx context.Context, whiteLabel, referrer, locale string) (domain.Screen, error)
	get    func(ctx context.Context, id uuid.UUID) (domain.Screen, error)
}

func (m *mockScreenServicer) Create(ctx context.Context, wl, ref, loc string) (domain.Screen, error) {
	return m.create(ctx, wl, ref, loc)
}
func (m *mockScreenServicer) Get(ctx context.Context, id uuid.UUID) (domain.Screen, error) {
	return m.get(ctx, id)
}

// mockRebateServicer is a test double for handler.RebateServicer.
type mockRebateServicer struct {
	lookup func(ctx context.Context, q domain.RebateQuery) ([]domain.RebateCategory, error)
}

func (m *mockRebateServicer) Lookup(ctx context.Context, q domain.RebateQuery) ([]domain.RebateCategory, error) {
	return m.lookup(ctx, q)
}

// compile-time checks.
var (
	_ handler.ScreenServicer = (*mockScreenServicer)(nil)
	_ handler.RebateServicer = (*mockRebateServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

func registry() *domain.Registry {
	return domain.NewRegistry([]domain.WhiteLabel{
		{Code: "_default"},
		{Code: "co"},
		{Code: "cesn", DefaultPath: "landing-page"},
	})
}

// newAPI mounts the API routes the way main.go does, minus middleware.
func newAPI(screens handler.ScreenServicer, rebates handler.RebateServicer) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handler.NewServer(screens, rebates, registry(), log)
	return srv.APIRoutes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}
