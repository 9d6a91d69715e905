package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/myfriendben/screener/internal/domain"
)

func TestIsValidUUID(t *testing.T) {
	const valid = "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"canonical", valid, true},
		{"uppercase", strings.ToUpper(valid), true},
		{"truncated", "550e8400-e29b-41d4-a716", false},
		{"empty", "", false},
		{"trailing suffix", valid + "x", false},
		{"leading space", " " + valid, false},
		{"no hyphens", strings.ReplaceAll(valid, "-", ""), false},
		{"braced", "{" + valid + "}", false},
		{"urn prefix", "urn:uuid:" + valid, false},
		{"non-hex digit", "550e8400-e29b-41d4-a716-44665544000g", false},
		{"misplaced hyphen", "550e840-0e29b-41d4-a716-446655440000", false},
		{"tenant code", "co", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.IsValidUUID(tc.in))
		})
	}
}

func TestIsValidUUID_GeneratedIDs(t *testing.T) {
	for range 20 {
		assert.True(t, domain.IsValidUUID(uuid.NewString()))
	}
}
