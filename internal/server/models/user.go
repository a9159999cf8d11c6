// Package models defines server-side data models persisted in the database.
package models

import "time"

// Role is the privilege level of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User is a staff account. Email and PasswordHash stay empty until the
// invitation is redeemed.
type User struct {
	ID           string
	Surname      string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// HasCredentials reports whether the user finished registration.
func (u *User) HasCredentials() bool {
	return u.Email != "" && u.PasswordHash != ""
}
