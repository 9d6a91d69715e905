package domain

import (
	"time"

	"github.com/google/uuid"
)

// Screen is one household's screening session. Its UUID is what appears in
// /{whiteLabel}/{uuid}/... URLs, and WhiteLabel is the authoritative tenant
// the session belongs to.
type Screen struct {
	UUID       uuid.UUID `json:"uuid"`
	WhiteLabel string    `json:"white_label"`
	Referrer   string    `json:"referrer,omitempty"`
	Locale     string    `json:"locale,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
