// Package crypto defines the signing contract consumed by the action processor.
// Implementations delegate the cryptography to a remote backend that owns the
// key material; callers only ever see key names and opaque signature bytes.
package crypto

import "context"

// Signer provides signing capabilities with a named remote key.
type Signer interface {
	// Sign signs the given message with the key and returns the raw signature.
	// Returns error if the round trip fails.
	Sign(ctx context.Context, keyName string, message []byte) ([]byte, error)

	Verifier
}

// Verifier provides signature verification capabilities.
// This is a read-only subset of Signer for consumers that only need to verify.
type Verifier interface {
	// Verify reports whether signature is valid for message under the key.
	// An invalid signature is reported as (false, nil); the error is reserved
	// for failed round trips.
	Verify(ctx context.Context, keyName string, message, signature []byte) (bool, error)
}
