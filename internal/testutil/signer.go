package testutil

import (
	"bytes"
	"context"
	"sync"
)

// SignerCall records one call made to a RecordingSigner.
type SignerCall struct {
	Op        string
	KeyName   string
	Message   []byte
	Signature []byte
}

// RecordingSigner is an in-memory crypto.Signer. Its signature for a
// message is a deterministic tag derived from the key name and message, so
// verify succeeds exactly for signatures it produced itself.
//
// SignErr and VerifyErr, when set, are returned for the call whose
// zero-based position among all calls equals the map key.
type RecordingSigner struct {
	mu        sync.Mutex
	calls     []SignerCall
	SignErr   map[int]error
	VerifyErr map[int]error
}

// Sign records the call and returns the tag for (keyName, message).
func (s *RecordingSigner) Sign(_ context.Context, keyName string, message []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.calls)
	s.calls = append(s.calls, SignerCall{Op: "sign", KeyName: keyName, Message: clone(message)})
	if err := s.SignErr[n]; err != nil {
		return nil, err
	}
	return Tag(keyName, message), nil
}

// Verify records the call and compares signature against the tag.
func (s *RecordingSigner) Verify(_ context.Context, keyName string, message, signature []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.calls)
	s.calls = append(s.calls, SignerCall{
		Op:        "verify",
		KeyName:   keyName,
		Message:   clone(message),
		Signature: clone(signature),
	})
	if err := s.VerifyErr[n]; err != nil {
		return false, err
	}
	return bytes.Equal(signature, Tag(keyName, message)), nil
}

// Calls returns a copy of the recorded calls in order.
func (s *RecordingSigner) Calls() []SignerCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SignerCall, len(s.calls))
	copy(out, s.calls)
	return out
}

// Tag is the signature RecordingSigner produces for keyName and message.
func Tag(keyName string, message []byte) []byte {
	out := make([]byte, 0, len(keyName)+1+len(message))
	out = append(out, keyName...)
	out = append(out, '|')
	return append(out, message...)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}
