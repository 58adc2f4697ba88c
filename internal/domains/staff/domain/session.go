package domain

import "time"

// Session is the server-side half of a sign-in. The token carries its id.
type Session struct {
	ID        string
	MemberID  int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
