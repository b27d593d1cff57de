// Package errors defines domain-level errors used throughout the application.
// These errors represent business logic failures and are mapped to exit codes by the CLI,
// and to HTTP status codes at the catalog API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to mapError (internal/api/server.go)
// 2. Add a test case to TestMapError (internal/api/server_test.go)
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the client provided invalid input or made a malformed request.
	// Recommended to map to HTTP 400 Bad Request.
	ErrBadRequest = errors.New("bad request")

	// ErrServerNotFound indicates that the requested server ID does not exist in the marketplace.
	// Users can recover by browsing the catalog for a valid ID.
	// Recommended to map to HTTP 404 Not Found.
	ErrServerNotFound = errors.New("server not found in marketplace")

	// ErrMissingRequiredInput indicates that install validation failed because required
	// arguments or environment variables were not supplied.
	// Recommended to map to HTTP 400 Bad Request.
	ErrMissingRequiredInput = errors.New("missing required configuration")

	// ErrScopeConflict indicates that project scope settings cannot be distinguished from user scope
	// settings, e.g. when running from the home directory. The user must re-run with an explicit scope.
	ErrScopeConflict = errors.New("project settings location is the same as user settings location")

	// ErrInvalidScope indicates an unrecognised installation scope was requested.
	// Recommended to map to HTTP 400 Bad Request.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrUserCancelled indicates that the user declined a prompt during installation.
	// This is a normal terminal outcome rather than a failure, and nothing is persisted.
	ErrUserCancelled = errors.New("installation cancelled")
)
