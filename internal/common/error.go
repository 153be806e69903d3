// Package common defines shared sentinel errors used across the service
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Signup / profile validation errors.
	ErrorFieldsRequired     = errors.New("all fields are required")
	ErrorPasswordTooShort   = errors.New("password too short")
	ErrorEmailExists        = errors.New("email already exists")
	ErrorInvalidUserData    = errors.New("invalid user data")
	ErrorProfilePicRequired = errors.New("profile pic is required")

	// Auth errors. Unknown email and wrong password deliberately share one
	// value so that callers cannot tell which check failed.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
