package models

import "time"

// SessionToken is the opaque value carried by the session cookie.
type SessionToken string

// Session binds a token to a user. Valid only ever goes from true to false.
type Session struct {
	ID        SessionToken
	UserID    string
	Valid     bool
	CreatedAt time.Time
}
