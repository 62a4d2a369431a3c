// Package errors provides centralized error handling for vaultsign.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrAuthentication indicates that the session could not be established
	// because the authentication check against the signing backend failed.
	// It is fatal and never retried.
	ErrAuthentication = errors.New("authentication failed")

	// ErrDecode indicates malformed base64, hex or signature envelope text.
	ErrDecode = errors.New("decode failed")

	// ErrSigning indicates a transport or backend failure during a sign round trip.
	ErrSigning = errors.New("signing failed")

	// ErrVerification indicates a transport or backend failure during a verify
	// round trip. An invalid signature is NOT a verification error.
	ErrVerification = errors.New("verification failed")

	// ErrMalformedResponse indicates the backend answered without the fields
	// the round trip requires.
	ErrMalformedResponse = errors.New("malformed backend response")

	// ErrCredentialMissing indicates that no token could be found in any
	// configured credential source.
	ErrCredentialMissing = errors.New("vault token not found")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidVault indicates an invalid Vault configuration value.
	ErrConfigInvalidVault = errors.New("invalid Vault configuration")

	// ErrConfigInvalidSigning indicates an invalid signing configuration value.
	ErrConfigInvalidSigning = errors.New("invalid signing configuration")

	// ErrConfigInvalidRun indicates an invalid run configuration value.
	ErrConfigInvalidRun = errors.New("invalid run configuration")

	// ErrKeyNameRequired indicates a command needs a key name but none was configured.
	ErrKeyNameRequired = errors.New("signing key name is required")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrActionFile indicates that an action file could not be read or parsed.
	ErrActionFile = errors.New("invalid action file")

	// ErrInvalidAction indicates an action that is malformed for its kind.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidActionRef indicates a verify action referencing a signature
	// that no earlier sign action in the same run produced.
	ErrInvalidActionRef = errors.New("invalid signature reference")

	// ErrOperationCanceled indicates processing stopped because the context
	// was canceled or its deadline passed.
	ErrOperationCanceled = errors.New("operation canceled")

	// ErrPromptUnavailable indicates an interactive prompt was needed but
	// stdin is not a terminal.
	ErrPromptUnavailable = errors.New("interactive prompt unavailable")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
