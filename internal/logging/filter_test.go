package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSensitiveValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		redacted string
	}{
		{"service token", "using token hvs.CAESIJ3x9aQ1b2c3d4e5f6g7h8i9j0", "hvs.CAESIJ3x9aQ1b2c3d4e5f6g7h8i9j0"},
		{"batch token", "hvb.AAAAAQJ8xkZ1lZ0aB1c2D3e4F5g6H7i8", "hvb.AAAAAQJ8xkZ1lZ0aB1c2D3e4F5g6H7i8"},
		{"legacy token", "token s.Zb2Y9xN3qW8eR4tY6uI1oP0a used", "s.Zb2Y9xN3qW8eR4tY6uI1oP0a"},
		{"header", `X-Vault-Token: abc123def456`, "abc123def456"},
		{"json client token", `{"client_token":"hvs.short"}`, "hvs.short"},
		{"password", "password=hunter22hunter22", "hunter22hunter22"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSensitiveValue(tt.input)
			assert.NotContains(t, got, tt.redacted)
			assert.Contains(t, got, RedactedValue)
			assert.True(t, ContainsSensitiveData(tt.input))
		})
	}
}

func TestFilterSensitiveValue_LeavesSignaturesAlone(t *testing.T) {
	inputs := []string{
		"vault:v1:MEUCIQDx2Ybq7w0yS1G4p0xw7hmV+XuUk4v7mEg1z1nHk2w==",
		"transit round trip op=sign key=radu-key-ed25519 duration=12ms",
		"http://127.0.0.1:8200/v1/transit/sign/demo",
	}
	for _, in := range inputs {
		assert.Equal(t, in, FilterSensitiveValue(in))
		assert.False(t, ContainsSensitiveData(in))
	}
}

func TestSafeValue(t *testing.T) {
	assert.Equal(t, RedactedValue, SafeValue("vault_token", "anything"))
	assert.Equal(t, RedactedValue, SafeValue("X-Vault-Token", "anything"))
	assert.Equal(t, "transit", SafeValue("mount", "transit"))
	assert.True(t, IsSensitiveFieldName("Client_Token"))
	assert.False(t, IsSensitiveFieldName("key_name"))
}

func TestFilteringWriter(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFilteringWriter(&buf)

	line := []byte(`{"level":"debug","header":"X-Vault-Token: hvs.CAESIJ3x9aQ1b2c3d4e5f6g7h8i9j0"}` + "\n")
	n, err := fw.Write(line)
	require.NoError(t, err)
	assert.Equal(t, len(line), n)
	assert.NotContains(t, buf.String(), "hvs.CAES")
	assert.Contains(t, buf.String(), RedactedValue)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") } //nolint:err113 // test double

func TestFilteringWriter_PropagatesErrors(t *testing.T) {
	n, err := NewFilteringWriter(failingWriter{}).Write([]byte("x"))
	require.Error(t, err)
	assert.Zero(t, n)
}

func TestSensitiveDataHook(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())

	logger.Info().Msg("plain message")
	assert.NotContains(t, buf.String(), "contains_filtered_data")

	buf.Reset()
	logger.Info().Msg("token hvs.CAESIJ3x9aQ1b2c3d4e5f6g7h8i9j0 leaked")
	assert.Contains(t, buf.String(), `"contains_filtered_data":true`)
}
