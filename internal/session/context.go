// Package session holds the per-browser session context and the two
// components that establish it: the initializer, which takes the white label
// from the URL or a partner page, and the restorer, which recovers it from a
// persisted screen.
package session

import (
	"context"
	"encoding/json"
)

// Context is the state shared by every request of one browser session.
// Fields are only changed through setters so that stores can tell whether a
// save is needed. Writes are last-write-wins; the router guarantees that only
// one of the initializer and the restorer runs for a given URL.
type Context struct {
	whiteLabel    string
	locale        string
	referrer      *string
	configLoading bool
	screenLoading bool
	dirty         bool
}

// New returns an empty session context. Config loading starts blocked until
// an initializer or restorer clears it.
func New() *Context {
	return &Context{configLoading: true, dirty: true}
}

func (c *Context) WhiteLabel() string  { return c.whiteLabel }
func (c *Context) Locale() string      { return c.locale }
func (c *Context) ConfigLoading() bool { return c.configLoading }
func (c *Context) ScreenLoading() bool { return c.screenLoading }

// Referrer returns the immutable referrer and whether it has been recorded.
// A recorded empty referrer means the session arrived without one.
func (c *Context) Referrer() (string, bool) {
	if c.referrer == nil {
		return "", false
	}
	return *c.referrer, true
}

// SetWhiteLabel commits the active white label. Validation is the caller's job.
func (c *Context) SetWhiteLabel(code string) {
	if c.whiteLabel != code {
		c.whiteLabel = code
		c.dirty = true
	}
}

func (c *Context) SetLocale(locale string) {
	if c.locale != locale {
		c.locale = locale
		c.dirty = true
	}
}

// RecordReferrer stores the referrer the session arrived with. Only the first
// call has an effect; it reports whether this call recorded the value.
func (c *Context) RecordReferrer(ref string) bool {
	if c.referrer != nil {
		return false
	}
	c.referrer = &ref
	c.dirty = true
	return true
}

func (c *Context) SetConfigLoading(loading bool) {
	if c.configLoading != loading {
		c.configLoading = loading
		c.dirty = true
	}
}

func (c *Context) SetScreenLoading(loading bool) {
	if c.screenLoading != loading {
		c.screenLoading = loading
		c.dirty = true
	}
}

// Dirty reports whether the context changed since it was loaded or saved.
func (c *Context) Dirty() bool { return c.dirty }

// MarkClean is called by stores after a successful save.
func (c *Context) MarkClean() { c.dirty = false }

// snapshot is the persisted form of a Context.
type snapshot struct {
	WhiteLabel    string  `json:"white_label,omitempty"`
	Locale        string  `json:"locale,omitempty"`
	Referrer      *string `json:"referrer,omitempty"`
	ConfigLoading bool    `json:"config_loading"`
	ScreenLoading bool    `json:"screen_loading"`
}

// MarshalJSON encodes the context for a store.
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		WhiteLabel:    c.whiteLabel,
		Locale:        c.locale,
		Referrer:      c.referrer,
		ConfigLoading: c.configLoading,
		ScreenLoading: c.screenLoading,
	})
}

// UnmarshalJSON restores a context saved by MarshalJSON. The result is clean.
func (c *Context) UnmarshalJSON(b []byte) error {
	var s snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = Context{
		whiteLabel:    s.WhiteLabel,
		locale:        s.Locale,
		referrer:      s.Referrer,
		configLoading: s.ConfigLoading,
		screenLoading: s.ScreenLoading,
	}
	return nil
}

type ctxKey struct{}

// WithContext returns a copy of ctx carrying the session context.
func WithContext(ctx context.Context, sess *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session context stored by WithContext.
func FromContext(ctx context.Context) (*Context, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*Context)
	return sess, ok
}
