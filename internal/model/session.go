package model

import "time"

// DefaultSessionExpiration is the session lifetime in seconds when the
// caller does not supply one
const DefaultSessionExpiration = 3600

// Session is a bearer token proving a successful login
type Session struct {
	Token      string
	AccountID  AccountID
	Expiration int // lifetime in seconds from CreatedAt
	CreatedAt  time.Time
}

// ExpiresAt returns the instant the session stops being valid
func (s *Session) ExpiresAt() time.Time {
	return s.CreatedAt.Add(time.Duration(s.Expiration) * time.Second)
}

// Expired reports whether the session is past its lifetime at the given instant
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt())
}
