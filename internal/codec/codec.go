// Package codec converts between raw byte payloads and the text encodings
// used on the wire by the Transit secrets engine.
//
// Payloads travel as standard base64 (padded, no line wrapping) and
// signatures travel inside an envelope of the form
// "<scheme>:<version>:<base64-payload>", for example "vault:v1:MEUC...".
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/mrz1836/vaultsign/internal/constants"
	"github.com/mrz1836/vaultsign/internal/errors"
)

// Encode returns the standard base64 encoding of data.
// It is total: every byte sequence, including the empty one, encodes.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode is the inverse of Encode.
// It returns an error wrapping errors.ErrDecode if text is not valid base64.
func Decode(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, errors.WrapWith(errors.ErrDecode, err, "base64")
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// FormatEnvelope returns "<scheme>:<version>:" followed by Encode(payload).
func FormatEnvelope(scheme, version string, payload []byte) string {
	sep := constants.EnvelopeSeparator
	return scheme + sep + version + sep + Encode(payload)
}

// FormatVaultEnvelope formats payload with the fixed "vault:v1" prefix
// that the Transit engine expects on verification requests.
func FormatVaultEnvelope(payload []byte) string {
	return FormatEnvelope(constants.EnvelopeScheme, constants.EnvelopeVersion, payload)
}

// ParseEnvelope extracts the payload of a signature envelope.
//
// Only the final colon-delimited field is decoded; everything before it is
// discarded, so prefixes with any number of segments parse the same way.
// It returns an error wrapping errors.ErrDecode if text contains no colon or
// the final field is not valid base64.
func ParseEnvelope(text string) ([]byte, error) {
	idx := strings.LastIndex(text, constants.EnvelopeSeparator)
	if idx < 0 {
		return nil, errors.Wrapf(errors.ErrDecode, "envelope %q has no %q separator", truncate(text), constants.EnvelopeSeparator)
	}
	payload, err := Decode(text[idx+1:])
	if err != nil {
		return nil, errors.Wrap(err, "envelope payload")
	}
	return payload, nil
}

// IsEnvelope reports whether text looks like an envelope rather than a bare
// encoded payload. Neither hex nor standard base64 ever contains a colon.
func IsEnvelope(text string) bool {
	return strings.Contains(text, constants.EnvelopeSeparator)
}

// EncodeHex returns the lowercase hex encoding of data.
func EncodeHex(data []byte) string {
	return hex.EncodeToString(data)
}

// DecodeHex decodes hex text, accepting an optional 0x prefix.
// It returns an error wrapping errors.ErrDecode on malformed input.
func DecodeHex(text string) ([]byte, error) {
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	data, err := hex.DecodeString(text)
	if err != nil {
		return nil, errors.WrapWith(errors.ErrDecode, err, "hex")
	}
	return data, nil
}

// truncate shortens text for inclusion in error messages.
func truncate(text string) string {
	const maxLen = 32
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
