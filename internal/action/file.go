package action

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/vaultsign/internal/codec"
	vserrors "github.com/mrz1836/vaultsign/internal/errors"
)

// fileEntry is one element of the actions list in an action file.
type fileEntry struct {
	Action          string  `yaml:"action"`
	Message         *string `yaml:"message"`
	MessageBase64   *string `yaml:"message_base64"`
	SignatureHex    *string `yaml:"signature_hex"`
	SignatureBase64 *string `yaml:"signature_base64"`
	SignatureRef    *int    `yaml:"signature_ref"`
}

type file struct {
	Actions []fileEntry `yaml:"actions"`
}

// LoadFile reads and parses an action file.
func LoadFile(path string) ([]Action, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is supplied by the operator
	if err != nil {
		return nil, vserrors.WrapWith(vserrors.ErrActionFile, err, "read "+path)
	}
	actions, err := Parse(data)
	if err != nil {
		return nil, vserrors.Wrap(err, path)
	}
	return actions, nil
}

// Parse decodes an action file document. Unknown fields are rejected, every
// entry is validated, and an empty list is an error.
func Parse(data []byte) ([]Action, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, vserrors.Wrap(vserrors.ErrActionFile, "file is empty")
		}
		return nil, vserrors.WrapWith(vserrors.ErrActionFile, err, "parse yaml")
	}
	if len(f.Actions) == 0 {
		return nil, vserrors.Wrap(vserrors.ErrActionFile, "no actions listed")
	}

	actions := make([]Action, 0, len(f.Actions))
	for i, entry := range f.Actions {
		a, err := entry.toAction()
		if err != nil {
			return nil, vserrors.WrapWith(vserrors.ErrActionFile, err, "action "+strconv.Itoa(i))
		}
		if err := a.Validate(); err != nil {
			return nil, vserrors.WrapWith(vserrors.ErrActionFile, err, "action "+strconv.Itoa(i))
		}
		if a.SignatureRef != nil && *a.SignatureRef >= i {
			return nil, vserrors.WrapWith(vserrors.ErrActionFile, vserrors.ErrInvalidActionRef,
				"action "+strconv.Itoa(i)+" references action "+strconv.Itoa(*a.SignatureRef)+" which does not precede it")
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func (e fileEntry) toAction() (Action, error) {
	message, err := e.message()
	if err != nil {
		return Action{}, err
	}

	switch Kind(e.Action) {
	case KindSign:
		if e.SignatureHex != nil || e.SignatureBase64 != nil || e.SignatureRef != nil {
			return Action{}, vserrors.Wrap(vserrors.ErrInvalidAction, "sign action must not carry a signature")
		}
		return NewSign(message), nil
	case KindVerify:
		set := 0
		for _, present := range []bool{e.SignatureHex != nil, e.SignatureBase64 != nil, e.SignatureRef != nil} {
			if present {
				set++
			}
		}
		if set != 1 {
			return Action{}, vserrors.Wrap(vserrors.ErrInvalidAction,
				"verify action needs exactly one of signature_hex, signature_base64, signature_ref")
		}
		switch {
		case e.SignatureRef != nil:
			return NewVerifyRef(message, *e.SignatureRef), nil
		case e.SignatureHex != nil:
			sig, err := codec.DecodeHex(*e.SignatureHex)
			if err != nil {
				return Action{}, vserrors.Wrap(err, "signature_hex")
			}
			return NewVerify(message, sig), nil
		default:
			sig, err := codec.Decode(*e.SignatureBase64)
			if err != nil {
				return Action{}, vserrors.Wrap(err, "signature_base64")
			}
			return NewVerify(message, sig), nil
		}
	default:
		return Action{}, vserrors.Wrapf(vserrors.ErrInvalidAction, "unknown action %q", e.Action)
	}
}

func (e fileEntry) message() ([]byte, error) {
	switch {
	case e.Message != nil && e.MessageBase64 != nil:
		return nil, vserrors.Wrap(vserrors.ErrInvalidAction, "message and message_base64 are mutually exclusive")
	case e.Message != nil:
		return []byte(*e.Message), nil
	case e.MessageBase64 != nil:
		b, err := codec.Decode(*e.MessageBase64)
		if err != nil {
			return nil, vserrors.Wrap(err, "message_base64")
		}
		return b, nil
	default:
		return nil, vserrors.Wrap(vserrors.ErrInvalidAction, "message or message_base64 is required")
	}
}
