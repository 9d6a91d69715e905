package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/myfriendben/screener/internal/domain"
)

// State is a step of session restoration.
type State int

const (
	// StateNoUUID means the URL carries no session id; the initializer owns the request.
	StateNoUUID State = iota
	// StateLoading means a screen fetch is in flight.
	StateLoading
	// StateRestored means the fetch returned a screen.
	StateRestored
	// StateFailed means the fetch returned an error.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNoUUID:
		return "no_uuid"
	case StateLoading:
		return "loading"
	case StateRestored:
		return "restored"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Resolution is the outcome of telling a white-label segment apart from a
// session id. UUID is empty when the URL has no valid session id.
type Resolution struct {
	UUID       string
	WhiteLabel string
}

// Disambiguate interprets the first two path segments. /:uuid and
// /:whiteLabel/:uuid share a shape, so precedence decides:
//  1. a UUID in the first segment is the session id and there is no white label;
//  2. otherwise a UUID in the second segment is the session id and the first
//     segment is the candidate white label;
//  3. otherwise there is no session id.
func Disambiguate(first, second string) Resolution {
	if domain.IsValidUUID(first) {
		return Resolution{UUID: first}
	}
	if second != "" && domain.IsValidUUID(second) {
		return Resolution{UUID: second, WhiteLabel: first}
	}
	return Resolution{WhiteLabel: first}
}

// Location is the browser location being restored. Search and Hash keep
// their leading "?" and "#" and are copied verbatim into redirects.
type Location struct {
	Path   string
	Search string
	Hash   string
}

// Event drives a Restoration out of StateLoading.
type Event struct {
	screen domain.Screen
	err    error
}

// Fetched is the event for a successful screen fetch.
func Fetched(s domain.Screen) Event { return Event{screen: s} }

// FetchFailed is the event for a rejected screen fetch.
func FetchFailed(err error) Event { return Event{err: err} }

// Restoration is the state of one restore attempt plus the decisions taken
// on the way: which white label to commit and where to redirect.
type Restoration struct {
	State      State
	Resolution Resolution

	// Commit is the white label to store in the session, empty for none.
	Commit string
	// Redirect is the replacement location, empty to serve the page as is.
	Redirect string
	// Err is set on StateFailed, and on StateRestored when the screen names
	// an unknown white label (wrapping domain.ErrInvalidWhiteLabel).
	Err error
}

// Anomalous reports whether the screen was fetched but carried a white
// label outside the registry.
func (r Restoration) Anomalous() bool {
	return r.State == StateRestored && errors.Is(r.Err, domain.ErrInvalidWhiteLabel)
}

// Start disambiguates the segments and enters StateLoading when there is a
// session id to fetch, StateNoUUID otherwise.
func Start(first, second string) Restoration {
	res := Disambiguate(first, second)
	if res.UUID == "" {
		return Restoration{State: StateNoUUID, Resolution: res}
	}
	return Restoration{State: StateLoading, Resolution: res}
}

// Transition applies ev to r. Only StateLoading accepts events; every other
// state is terminal and is returned unchanged.
func Transition(r Restoration, ev Event, loc Location, reg *domain.Registry) Restoration {
	if r.State != StateLoading {
		return r
	}

	candidate := r.Resolution.WhiteLabel

	if ev.err != nil {
		r.State = StateFailed
		r.Err = ev.err
		r.Redirect = fallback(candidate, loc)
		return r
	}

	r.State = StateRestored
	authoritative := ev.screen.WhiteLabel
	if !reg.IsValid(authoritative) {
		r.Err = fmt.Errorf("%w: %q", domain.ErrInvalidWhiteLabel, authoritative)
		r.Redirect = fallback(candidate, loc)
		return r
	}

	r.Commit = authoritative
	switch {
	case candidate == "":
		r.Redirect = "/" + authoritative + loc.Path + loc.Search + loc.Hash
	case candidate != authoritative:
		r.Redirect = replaceFirstSegment(loc.Path, authoritative) + loc.Search + loc.Hash
	}
	return r
}

// fallback is the start of the flow, scoped to the candidate white label
// when the URL had one.
func fallback(candidate string, loc Location) string {
	prefix := ""
	if candidate != "" {
		prefix = "/" + candidate
	}
	return prefix + "/" + domain.DefaultLandingPath + loc.Search + loc.Hash
}

// replaceFirstSegment swaps the first path segment for seg and keeps the
// rest of the path verbatim.
func replaceFirstSegment(path, seg string) string {
	rest := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return "/" + seg + rest[i:]
	}
	return "/" + seg
}

// ScreenFetcher loads a persisted screen by id.
type ScreenFetcher interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Screen, error)
}

// Restorer runs restoration against a fetcher and a session context.
type Restorer struct {
	registry *domain.Registry
	screens  ScreenFetcher
	log      *slog.Logger
}

// NewRestorer constructs a Restorer.
func NewRestorer(reg *domain.Registry, screens ScreenFetcher, log *slog.Logger) *Restorer {
	return &Restorer{registry: reg, screens: screens, log: log}
}

// Restore disambiguates first and second, fetches the screen once (no
// retry) and reconciles sess with the screen's white label. The fetch is
// bound to ctx: a request abandoned by the browser cancels its fetch, which
// then ends in StateFailed. The screen-loading flag is cleared on every path.
func (r *Restorer) Restore(ctx context.Context, sess *Context, first, second string, loc Location) Restoration {
	st := Start(first, second)
	if st.State == StateNoUUID {
		return st
	}

	sess.SetScreenLoading(true)
	defer sess.SetScreenLoading(false)

	var ev Event
	id, err := uuid.Parse(st.Resolution.UUID)
	if err != nil {
		ev = FetchFailed(fmt.Errorf("session.Restorer.Restore: parse uuid: %w", err))
	} else {
		screen, err := r.screens.Get(ctx, id)
		if err != nil {
			ev = FetchFailed(fmt.Errorf("session.Restorer.Restore: %w", err))
		} else {
			ev = Fetched(screen)
		}
	}

	st = Transition(st, ev, loc, r.registry)

	switch {
	case st.State == StateFailed:
		r.log.ErrorContext(ctx, "screen fetch failed",
			"uuid", st.Resolution.UUID,
			"white_label", st.Resolution.WhiteLabel,
			"error", st.Err,
		)
	case st.Anomalous():
		r.log.WarnContext(ctx, "screen has unknown white label",
			"uuid", st.Resolution.UUID,
			"white_label", st.Resolution.WhiteLabel,
			"error", st.Err,
		)
	}

	if st.Commit != "" {
		sess.SetWhiteLabel(st.Commit)
		sess.SetConfigLoading(false)
	}
	return st
}
