package models

import "time"

// User is the identity returned by the collaborator on login or registration.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the authenticated identity plus the bearer credential.
type Session struct {
	Token     string     `json:"-"`
	User      User       `json:"user"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // From the token's exp claim when it carries one
}

// Expired reports whether the session's token has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// Credential is a snapshot of the bearer token paired with the session
// generation it was issued under.
type Credential struct {
	Token      string
	Generation uint64
}
