package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfriendben/screener/internal/middleware"
	"github.com/myfriendben/screener/internal/session"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func newMemoryStore(t *testing.T) *session.MemoryStore {
	t.Helper()
	store, err := session.NewMemoryStore(1000, time.Hour)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

// failingStore is a session.Store whose every call fails.
type failingStore struct{}

func (failingStore) Load(context.Context, string) (*session.Context, error) {
	return nil, errors.New("redis down")
}

func (failingStore) Save(context.Context, string, *session.Context) error {
	return errors.New("redis down")
}

var _ session.Store = failingStore{}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestSession_NewVisitorGetsCookieAndState(t *testing.T) {
	store := newMemoryStore(t)
	h := middleware.NewSession(store, quietLog, true)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			require.True(t, ok)
			sess.SetWhiteLabel("nc")
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nc/step-1", nil))

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	_, err := uuid.Parse(c.Value)
	require.NoError(t, err)

	saved, err := store.Load(context.Background(), c.Value)
	require.NoError(t, err)
	assert.Equal(t, "nc", saved.WhiteLabel())
}

func TestSession_ReturningVisitorKeepsState(t *testing.T) {
	store := newMemoryStore(t)
	id := uuid.NewString()
	prior := session.New()
	prior.SetWhiteLabel("ma")
	require.NoError(t, store.Save(context.Background(), id, prior))

	var seen string
	h := middleware.NewSession(store, quietLog, false)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := session.FromContext(r.Context())
			seen = sess.WhiteLabel()
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/ma/step-2", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: id})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "ma", seen)
	assert.Nil(t, sessionCookie(rec), "an existing valid cookie is not reissued")
}

func TestSession_MalformedCookieStartsOver(t *testing.T) {
	h := middleware.NewSession(newMemoryStore(t), quietLog, false)(trivialHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "../../etc"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.NotEqual(t, "../../etc", c.Value)
}

func TestSession_StoreFailureDoesNotFailRequest(t *testing.T) {
	h := middleware.NewSession(failingStore{}, quietLog, false)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := session.FromContext(r.Context())
			assert.True(t, ok)
			w.WriteHeader(http.StatusOK)
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReferrerCapture_FirstRequestWins(t *testing.T) {
	store := newMemoryStore(t)
	var ref string
	var recorded bool
	h := middleware.NewSession(store, quietLog, false)(
		middleware.NewReferrerCapture()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := session.FromContext(r.Context())
			ref, recorded = sess.Referrer()
		})),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?referrer=211co", nil))
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.True(t, recorded)
	assert.Equal(t, "211co", ref)

	req := httptest.NewRequest(http.MethodGet, "/?referrer=bia", nil)
	req.AddCookie(c)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "211co", ref, "the referrer is immutable once recorded")
}
