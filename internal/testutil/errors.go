// Package testutil provides testing utilities for vaultsign.
//
// This package contains mock errors and test doubles used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockNetwork simulates a transport failure.
	ErrMockNetwork = errors.New("network error")

	// ErrMockBackend simulates a backend rejecting a request.
	ErrMockBackend = errors.New("backend error")

	// ErrMockPrompt simulates an aborted interactive prompt.
	ErrMockPrompt = errors.New("prompt aborted")
)
