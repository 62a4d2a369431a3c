// Package logging keeps Vault credentials out of log output.
//
// Tokens are redacted by pattern from every line written through a
// FilteringWriter, and call sites that log values of unknown provenance
// can pass them through SafeValue first.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns match Vault credentials and generic secrets.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// Vault service, batch and recovery tokens (hvs., hvb., hvr.)
	regexp.MustCompile(`\bhv[sbr]\.[A-Za-z0-9_-]{20,}`),

	// Legacy Vault tokens (s.<24 chars>, b.<...>)
	regexp.MustCompile(`\b[sb]\.[A-Za-z0-9]{24,}\b`),

	// X-Vault-Token and X-Vault-Wrap-Token headers
	regexp.MustCompile(`(?i)x-vault-(wrap-)?token["']?\s*[:=]\s*["']?[^\s"',}]+["']?`),

	// client_token / wrapping_token fields in Vault JSON responses
	regexp.MustCompile(`(?i)"(client|wrapping|accessor)_token"\s*:\s*"[^"]+"`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),

	// Generic secret assignments
	regexp.MustCompile(`(?i)(secret|password|credential|passwd)\s*[:=]\s*["']?[^\s"']{8,}["']?`),

	// Private keys
	regexp.MustCompile(`(?i)-----BEGIN[A-Z\s]+PRIVATE KEY-----`),
}

// sensitiveFieldNames contains field names whose values are always redacted.
// Matching is case-insensitive and by substring.
var sensitiveFieldNames = []string{ //nolint:gochecknoglobals // Package-level patterns for reuse
	"token",
	"password",
	"passwd",
	"secret",
	"credential",
	"private_key",
	"authorization",
	"unseal",
}

// SensitiveDataHook flags log events whose message contains sensitive data.
// zerolog does not let a hook rewrite the message; redaction itself happens
// in FilteringWriter.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements zerolog.Hook.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every sensitive match in value with [REDACTED].
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName reports whether a field name indicates sensitive data.
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFieldNames {
		if strings.Contains(lowerName, sensitive) {
			return true
		}
	}
	return false
}

// SafeValue returns [REDACTED] for sensitive field names and the filtered
// value otherwise.
//
//	logger.Debug().Str("path", logging.SafeValue("path", p)).Msg("token file read")
func SafeValue(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter wraps an io.Writer and redacts sensitive data from
// everything written through it.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a FilteringWriter around w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success so callers never
// see a short write when redaction changes the length.
func (fw *FilteringWriter) Write(p []byte) (int, error) {
	if _, err := fw.w.Write([]byte(FilterSensitiveValue(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
