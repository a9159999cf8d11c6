package models

import "time"

// RegistrationToken is a single-use invitation bound to a pending user.
type RegistrationToken struct {
	ID        string
	UserID    string
	Valid     bool
	CreatedAt time.Time
}

// Invitation is what an administrator gets back after provisioning a user.
type Invitation struct {
	UserID  string
	TokenID string
}

// PendingRegistration is a provisioned user whose invitation is still open.
type PendingRegistration struct {
	UserID  string
	Surname string
	Name    string
	TokenID string
}
