package session

import "github.com/myfriendben/screener/internal/domain"

type sourceKind int

const (
	sourceFromURL sourceKind = iota
	sourceExplicit
)

// TenantSource says where the white label for a request comes from: an
// explicit value fixed by a partner landing page, or the URL segment.
type TenantSource struct {
	kind  sourceKind
	value string
}

// Explicit is a white label hardcoded by the route.
func Explicit(code string) TenantSource { return TenantSource{kind: sourceExplicit, value: code} }

// FromURL is the whiteLabel path segment, possibly empty.
func FromURL(segment string) TenantSource { return TenantSource{kind: sourceFromURL, value: segment} }

// Resolve returns the candidate white label.
func (s TenantSource) Resolve() string { return s.value }

// IsExplicit reports whether the route fixed the white label.
func (s TenantSource) IsExplicit() bool { return s.kind == sourceExplicit }

// Initialize commits the resolved white label to sess when it is valid and
// always unblocks config loading: an invalid label must not hang the page,
// a guard further down redirects it. It reports whether a label was committed.
func Initialize(sess *Context, reg *domain.Registry, src TenantSource) bool {
	defer sess.SetConfigLoading(false)

	code := src.Resolve()
	if !reg.IsValid(code) {
		return false
	}
	sess.SetWhiteLabel(code)
	return true
}
