package common

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"
