// Package action holds the sign/verify work items and the processor that
// dispatches them, one at a time and in order, against a crypto.Signer.
package action

import (
	"fmt"

	"github.com/mrz1836/vaultsign/internal/errors"
)

// Kind is the operation an Action requests.
type Kind string

// Action kinds.
const (
	KindSign   Kind = "sign"
	KindVerify Kind = "verify"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindSign || k == KindVerify
}

// Action is one unit of work. Build it with NewSign, NewVerify or
// NewVerifyRef; the processor never mutates it.
type Action struct {
	Kind    Kind
	Message []byte

	// Signature is the candidate signature of a verify action.
	Signature []byte

	// SignatureRef, when set, makes a verify action use the signature
	// produced by the sign action at that index of the same run.
	SignatureRef *int
}

// NewSign returns a sign action for a copy of message.
func NewSign(message []byte) Action {
	return Action{Kind: KindSign, Message: clone(message)}
}

// NewVerify returns a verify action for copies of message and signature.
func NewVerify(message, signature []byte) Action {
	return Action{Kind: KindVerify, Message: clone(message), Signature: clone(signature)}
}

// NewVerifyRef returns a verify action whose signature is the one produced
// by the sign action at index. The reference is resolved by Process.
func NewVerifyRef(message []byte, index int) Action {
	return Action{Kind: KindVerify, Message: clone(message), SignatureRef: &index}
}

// Validate checks that the action is well formed for its kind.
func (a Action) Validate() error {
	switch a.Kind {
	case KindSign:
		if a.Signature != nil || a.SignatureRef != nil {
			return errors.Wrap(errors.ErrInvalidAction, "sign action must not carry a signature")
		}
	case KindVerify:
		if a.Signature != nil && a.SignatureRef != nil {
			return errors.Wrap(errors.ErrInvalidAction, "verify action has both a signature and a signature reference")
		}
		if a.Signature == nil && a.SignatureRef == nil {
			return errors.Wrap(errors.ErrInvalidAction, "verify action needs a signature or a signature reference")
		}
		if a.SignatureRef != nil && *a.SignatureRef < 0 {
			return errors.Wrapf(errors.ErrInvalidActionRef, "negative reference %d", *a.SignatureRef)
		}
	default:
		return errors.Wrapf(errors.ErrInvalidAction, "unknown action kind %q", a.Kind)
	}
	return nil
}

// String describes the action without its payload.
func (a Action) String() string {
	if a.SignatureRef != nil {
		return fmt.Sprintf("%s(%d bytes, ref #%d)", a.Kind, len(a.Message), *a.SignatureRef)
	}
	return fmt.Sprintf("%s(%d bytes)", a.Kind, len(a.Message))
}

// DemoActions returns the built-in demonstration run: two signs followed by
// a verify with an all-zero 64-byte signature, which Vault reports invalid.
func DemoActions() []Action {
	return []Action{
		NewSign([]byte("Hello, Vault!")),
		NewSign([]byte("This is another test message.")),
		NewVerify([]byte("Hello, Vault!"), make([]byte, 64)),
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return append([]byte{}, b...)
}
