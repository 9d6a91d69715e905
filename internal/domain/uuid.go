package domain

import "regexp"

// uuidPattern is the canonical 8-4-4-4-12 hex form. uuid.Parse is not used
// for validation because it also accepts braced, urn-prefixed and unhyphenated
// forms that must not be routed as session ids.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsValidUUID reports whether s has the shape of a session UUID.
// The check is purely syntactic; it says nothing about whether a screen with
// that id exists.
func IsValidUUID(s string) bool {
	return uuidPattern.MatchString(s)
}
