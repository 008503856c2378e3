package domain

import "time"

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 30 * 24 * time.Hour

// Session is a server-side record of an issued session token. The token is
// opaque to the client; validity is decided entirely by this row.
type Session struct {
	ID        string
	UserID    int
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at time now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
