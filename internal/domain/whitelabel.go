// Package domain contains the core data types for the screener gateway.
// Apart from google/uuid it has no external dependencies and is imported by
// every other internal package.
package domain

// DefaultLandingPath is the sub-path used for a white label that does not
// configure its own landing page.
const DefaultLandingPath = "step-1"

// WhiteLabel is a tenant: a partner- or state-specific configuration
// namespace. DefaultPath is stored without a leading slash.
type WhiteLabel struct {
	Code        string `json:"code" yaml:"code"`
	DefaultPath string `json:"default_path,omitempty" yaml:"default_path"`
}

// Registry is the closed set of known white labels. It is built once at
// start-up and never mutated, so it is safe for concurrent use.
type Registry struct {
	labels map[string]WhiteLabel
	order  []string
}

// NewRegistry builds a Registry from labels. Later duplicates replace earlier
// ones but keep the position of the first occurrence.
func NewRegistry(labels []WhiteLabel) *Registry {
	r := &Registry{labels: make(map[string]WhiteLabel, len(labels))}
	for _, l := range labels {
		if _, seen := r.labels[l.Code]; !seen {
			r.order = append(r.order, l.Code)
		}
		r.labels[l.Code] = l
	}
	return r
}

// IsValid reports whether code names a known white label.
// The match is exact and case-sensitive: "CO" and "co " are not "co".
func (r *Registry) IsValid(code string) bool {
	_, ok := r.labels[code]
	return ok
}

// DefaultPath returns the landing sub-path for code, falling back to
// DefaultLandingPath when the label is unknown or has no override.
func (r *Registry) DefaultPath(code string) string {
	if l, ok := r.labels[code]; ok && l.DefaultPath != "" {
		return l.DefaultPath
	}
	return DefaultLandingPath
}

// All returns the registered white labels in registration order.
func (r *Registry) All() []WhiteLabel {
	out := make([]WhiteLabel, 0, len(r.order))
	for _, code := range r.order {
		l := r.labels[code]
		l.DefaultPath = r.DefaultPath(code)
		out = append(out, l)
	}
	return out
}
