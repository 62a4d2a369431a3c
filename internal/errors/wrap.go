package errors

import "fmt"

// Wrap adds context to errors at package boundaries.
// It returns nil if err is nil, allowing for safe inline usage.
//
// The wrapped error preserves the original error chain, enabling
// errors.Is() checks to continue working:
//
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
// IMPORTANT: Only wrap errors at package boundaries to avoid
// overly nested error messages.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context to errors at package boundaries.
// It returns nil if err is nil, allowing for safe inline usage.
//
//	return errors.Wrapf(err, "failed to sign with key %s", keyName)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapWith tags cause with a sentinel category so that both stay matchable:
//
//	err := errors.WrapWith(errors.ErrSigning, respErr, "transit sign")
//	errors.Is(err, errors.ErrSigning) // true
//	errors.Is(err, respErr)           // true
//
// It returns nil if cause is nil.
func WrapWith(sentinel, cause error, msg string) error {
	if cause == nil {
		return nil
	}
	if msg == "" {
		return fmt.Errorf("%w: %w", sentinel, cause)
	}
	return fmt.Errorf("%s: %w: %w", msg, sentinel, cause)
}
