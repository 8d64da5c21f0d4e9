package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is one booking form's address selection, kept between requests
// until the form is submitted or the session expires.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Selection Selection `json:"selection"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has passed its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionView is a session plus everything the form needs to render it.
type SessionView struct {
	ID        uuid.UUID `json:"id"`
	Selection Selection `json:"selection"`
	Cities    []Option  `json:"cities"`
	Districts []Option  `json:"districts"`
	Wards     []Option  `json:"wards"`
	Preview   string    `json:"preview"`
	Complete  bool      `json:"complete"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Submission is the result of submitting a completed selection.
type Submission struct {
	Selection Selection `json:"selection"`
	Address   string    `json:"address"`
}
