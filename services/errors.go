// Package services: services/errors.go
package services

import "errors"

// Failure taxonomy for everything the upstream tea service can do to us.
// Controllers switch on these with errors.Is to pick the right message;
// anything not wrapped in one of them is treated as ErrNetworkFailure.
var (
	// ErrAuthenticationFailed covers bad credentials and a 2xx login
	// response that carries no token.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrValidationFailed is raised before any network call when a
	// client-side precondition (non-empty name, etc.) is not met.
	ErrValidationFailed = errors.New("validation failed")

	// ErrConflict maps upstream 409s: duplicate tea or duplicate
	// tasting name.
	ErrConflict = errors.New("conflict")

	// ErrNetworkFailure is everything else: transport errors and
	// non-2xx responses with no more specific meaning.
	ErrNetworkFailure = errors.New("network failure")
)
