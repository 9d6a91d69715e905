package session_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfriendben/screener/internal/domain"
	"github.com/myfriendben/screener/internal/session"
)

const screenID = "550e8400-e29b-41d4-a716-446655440000"

// ---- mock ScreenFetcher ----------------------------------------------------

type mockFetcher struct {
	get   func(ctx context.Context, id uuid.UUID) (domain.Screen, error)
	calls int
}

func (m *mockFetcher) Get(ctx context.Context, id uuid.UUID) (domain.Screen, error) {
	m.calls++
	return m.get(ctx, id)
}

// compile-time check: mockFetcher must satisfy session.ScreenFetcher.
var _ session.ScreenFetcher = (*mockFetcher)(nil)

func screenFor(whiteLabel string) *mockFetcher {
	return &mockFetcher{get: func(_ context.Context, id uuid.UUID) (domain.Screen, error) {
		return domain.Screen{UUID: id, WhiteLabel: whiteLabel}, nil
	}}
}

func newRestorer(f session.ScreenFetcher) (*session.Restorer, *bytes.Buffer) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	return session.NewRestorer(registry(), f, log), &buf
}

// ---- Disambiguate ----------------------------------------------------------

func TestDisambiguate(t *testing.T) {
	tests := []struct {
		name          string
		first, second string
		want          session.Resolution
	}{
		{"uuid only", screenID, "", session.Resolution{UUID: screenID}},
		{"uuid first wins over second", screenID, "results", session.Resolution{UUID: screenID}},
		{"white label then uuid", "co", screenID, session.Resolution{UUID: screenID, WhiteLabel: "co"}},
		{"white label then junk", "co", "not-a-uuid", session.Resolution{WhiteLabel: "co"}},
		{"white label only", "co", "", session.Resolution{WhiteLabel: "co"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, session.Disambiguate(tc.first, tc.second))
		})
	}
}

// ---- Transition ------------------------------------------------------------

func TestStart_NoUUID(t *testing.T) {
	st := session.Start("co", "step-2")

	assert.Equal(t, session.StateNoUUID, st.State)
	assert.Empty(t, st.Resolution.UUID)
}

func TestTransition_TerminalStatesIgnoreEvents(t *testing.T) {
	st := session.Start("co", "step-2")

	next := session.Transition(st, session.Fetched(domain.Screen{WhiteLabel: "nc"}), session.Location{}, registry())

	assert.Equal(t, st, next)
}

func TestTransition_RestoredWithoutWhiteLabelSegment(t *testing.T) {
	st := session.Start(screenID, "results")
	loc := session.Location{Path: "/" + screenID + "/results", Search: "?lang=es", Hash: "#top"}

	st = session.Transition(st, session.Fetched(domain.Screen{WhiteLabel: "co"}), loc, registry())

	assert.Equal(t, session.StateRestored, st.State)
	assert.Equal(t, "co", st.Commit)
	assert.Equal(t, "/co/"+screenID+"/results?lang=es#top", st.Redirect)
}

func TestTransition_RestoredWithMatchingWhiteLabel(t *testing.T) {
	st := session.Start("co", screenID)
	loc := session.Location{Path: "/co/" + screenID + "/step-3"}

	st = session.Transition(st, session.Fetched(domain.Screen{WhiteLabel: "co"}), loc, registry())

	assert.Equal(t, session.StateRestored, st.State)
	assert.Equal(t, "co", st.Commit)
	assert.Empty(t, st.Redirect)
}

func TestTransition_RestoredWithDifferentWhiteLabelRewritesFirstSegmentOnly(t *testing.T) {
	st := session.Start("nc", screenID)
	loc := session.Location{Path: "/nc/" + screenID + "/results/benefits/7", Search: "?x=1"}

	st = session.Transition(st, session.Fetched(domain.Screen{WhiteLabel: "co"}), loc, registry())

	assert.Equal(t, "co", st.Commit)
	assert.Equal(t, "/co/"+screenID+"/results/benefits/7?x=1", st.Redirect)
}

func TestTransition_RestoredWithUnknownWhiteLabel(t *testing.T) {
	st := session.Start("co", screenID)
	loc := session.Location{Path: "/co/" + screenID, Search: "?lang=es", Hash: "#h"}

	st = session.Transition(st, session.Fetched(domain.Screen{WhiteLabel: "tx"}), loc, registry())

	assert.Equal(t, session.StateRestored, st.State)
	assert.True(t, st.Anomalous())
	assert.ErrorIs(t, st.Err, domain.ErrInvalidWhiteLabel)
	assert.Empty(t, st.Commit, "an unknown white label is never committed")
	assert.Equal(t, "/co/step-1?lang=es#h", st.Redirect)
}

func TestTransition_FailedWithCandidate(t *testing.T) {
	st := session.Start("nc", screenID)
	loc := session.Location{Path: "/nc/" + screenID, Search: "?utm=a"}

	st = session.Transition(st, session.FetchFailed(errors.New("boom")), loc, registry())

	assert.Equal(t, session.StateFailed, st.State)
	assert.False(t, st.Anomalous())
	assert.Equal(t, "/nc/step-1?utm=a", st.Redirect)
}

func TestTransition_FailedWithoutCandidate(t *testing.T) {
	st := session.Start(screenID, "")
	loc := session.Location{Path: "/" + screenID}

	st = session.Transition(st, session.FetchFailed(errors.New("boom")), loc, registry())

	assert.Equal(t, "/step-1", st.Redirect)
}

// ---- Restorer --------------------------------------------------------------

func TestRestorer_NoUUIDDoesNotFetch(t *testing.T) {
	f := screenFor("co")
	r, _ := newRestorer(f)
	sess := session.New()

	st := r.Restore(context.Background(), sess, "co", "step-1", session.Location{Path: "/co/step-1"})

	assert.Equal(t, session.StateNoUUID, st.State)
	assert.Zero(t, f.calls)
	assert.True(t, sess.ConfigLoading(), "the initializer, not the restorer, unblocks this path")
}

func TestRestorer_CommitsAuthoritativeWhiteLabel(t *testing.T) {
	f := screenFor("ma")
	r, _ := newRestorer(f)
	sess := session.New()
	sess.SetWhiteLabel("co")

	st := r.Restore(context.Background(), sess, "co", screenID, session.Location{Path: "/co/" + screenID})

	assert.Equal(t, 1, f.calls, "exactly one fetch, no retry")
	assert.Equal(t, "ma", sess.WhiteLabel())
	assert.Equal(t, "/ma/"+screenID, st.Redirect)
	assert.False(t, sess.ScreenLoading())
	assert.False(t, sess.ConfigLoading())
}

func TestRestorer_FailureLogsAndClearsLoading(t *testing.T) {
	f := &mockFetcher{get: func(context.Context, uuid.UUID) (domain.Screen, error) {
		return domain.Screen{}, domain.ErrNotFound
	}}
	r, logs := newRestorer(f)
	sess := session.New()

	st := r.Restore(context.Background(), sess, "co", screenID, session.Location{Path: "/co/" + screenID})

	require.Equal(t, session.StateFailed, st.State)
	assert.ErrorIs(t, st.Err, domain.ErrNotFound)
	assert.Equal(t, 1, f.calls)
	assert.False(t, sess.ScreenLoading())
	assert.Empty(t, sess.WhiteLabel())
	assert.Contains(t, logs.String(), "screen fetch failed")
}

func TestRestorer_AnomalyLoggedDistinctly(t *testing.T) {
	r, logs := newRestorer(screenFor("atlantis"))
	sess := session.New()

	st := r.Restore(context.Background(), sess, screenID, "", session.Location{Path: "/" + screenID})

	assert.True(t, st.Anomalous())
	assert.Contains(t, logs.String(), "screen has unknown white label")
	assert.NotContains(t, logs.String(), "screen fetch failed")
	assert.Empty(t, sess.WhiteLabel())
}

// A navigation that supersedes an in-flight request cancels its context. The
// restorer does not retry or de-duplicate; the cancelled attempt simply fails.
func TestRestorer_CancelledRequestFails(t *testing.T) {
	f := &mockFetcher{get: func(ctx context.Context, _ uuid.UUID) (domain.Screen, error) {
		<-ctx.Done()
		return domain.Screen{}, ctx.Err()
	}}
	r, _ := newRestorer(f)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := r.Restore(ctx, session.New(), "co", screenID, session.Location{Path: "/co/" + screenID})

	assert.Equal(t, session.StateFailed, st.State)
	assert.ErrorIs(t, st.Err, context.Canceled)
}
