package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/myfriendben/screener/internal/session"
)

// SessionCookie names the cookie holding the browser session id.
const SessionCookie = "mfb_session"

type holderKey struct{}

func withSessionHolder(ctx context.Context, h *sessionHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

// NewSession returns a middleware that loads the browser's session context
// from store, exposes it through session.FromContext and saves it after the
// handler when it changed. A missing or malformed cookie starts a new session.
//
// Store failures never fail the request: the handler runs with a fresh
// context and the error is logged.
func NewSession(store session.Store, log *slog.Logger, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(SessionCookie); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess, err := store.Load(r.Context(), id)
			if err != nil {
				log.ErrorContext(r.Context(), "session load failed", "error", err)
				sess = session.New()
			}

			if locale, ok := LocaleFromContext(r.Context()); ok {
				sess.SetLocale(locale)
			}
			if h, ok := r.Context().Value(holderKey{}).(*sessionHolder); ok {
				h.sess = sess
			}

			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sess)))

			if !sess.Dirty() {
				return
			}
			// The browser may already be gone; the session still has to be kept.
			if err := store.Save(context.WithoutCancel(r.Context()), id, sess); err != nil {
				log.ErrorContext(r.Context(), "session save failed", "error", err)
			}
		})
	}
}

// NewReferrerCapture returns a middleware that records the "referrer" query
// parameter as the session's immutable referrer. Only the first request of a
// session records anything; a request without the parameter records "".
// Mount it after NewSession.
func NewReferrerCapture() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, ok := session.FromContext(r.Context()); ok {
				sess.RecordReferrer(r.URL.Query().Get("referrer"))
			}
			next.ServeHTTP(w, r)
		})
	}
}
