package model

import "time"

// SessionToken is what a session remembers about its principal.
// The type is fixed at login and never re-derived from the record.
type SessionToken struct {
	PrincipalID   PrincipalID
	PrincipalType PrincipalType
}

// Session is a server-side login session referenced by an opaque cookie value
type Session struct {
	ID        string
	Token     SessionToken
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has expired at the given time
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
