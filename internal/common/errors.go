// Package common defines shared constants and sentinel errors used across
// the repository, service and transport layers of helpdesk. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrEmailTaken = errors.New("email already in use")

	// Infrastructure failures. Services wrap driver errors with ErrUnavailable
	// so transports can tell them apart from expected business outcomes.
	ErrUnavailable = errors.New("storage unavailable")
	ErrorInternal  = errors.New("internal error")

	// Authentication and authorization outcomes.
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Registration token lifecycle.
	ErrInvalidToken = errors.New("invalid token")
	ErrConflict     = errors.New("registration token already claimed")

	// Validation errors.
	ErrMissingFields    = errors.New("required fields are missing")
	ErrMissingProblemID = errors.Join(ErrMissingFields, errors.New("problem id is required"))
	ErrMissingStatus    = errors.Join(ErrMissingFields, errors.New("status is required"))
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidCategory  = errors.New("invalid category")
)
