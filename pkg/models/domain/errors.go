package domain

import "errors"

var (
	// ErrNotFound is returned when a client or organization scope does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrDependencyUnavailable marks failures of the optional graph-native store.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrInvalidScope is returned for malformed report scopes.
	ErrInvalidScope = errors.New("invalid report scope")
	// ErrReportTimeout is returned when a report misses its deadline.
	ErrReportTimeout = errors.New("report deadline exceeded")
)
