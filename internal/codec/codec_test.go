package codec

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/vaultsign/internal/errors"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		encoded := Encode([]byte{})
		assert.Empty(t, encoded)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, []byte{}, decoded)
	})

	t.Run("text message", func(t *testing.T) {
		encoded := Encode([]byte("Hello, Vault!"))
		assert.Equal(t, "SGVsbG8sIFZhdWx0IQ==", encoded)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, []byte("Hello, Vault!"), decoded)
	})

	t.Run("random binary of many lengths", func(t *testing.T) {
		for n := 1; n <= 300; n += 7 {
			data := randomBytes(t, n)
			decoded, err := Decode(Encode(data))
			require.NoError(t, err)
			assert.True(t, bytes.Equal(data, decoded), "length %d did not round trip", n)
		}
	})

	t.Run("no line wrapping", func(t *testing.T) {
		encoded := Encode(randomBytes(t, 4096))
		assert.NotContains(t, encoded, "\n")
	})
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"punctuation", "not-base64!!"},
		{"bad padding", "SGVsbG8"},
		{"url alphabet", "_-_-"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrDecode)
		})
	}
}

func TestEnvelope_RoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		make([]byte, 64),
		randomBytes(t, 64),
		randomBytes(t, 256),
	}

	for _, payload := range payloads {
		text := FormatEnvelope("vault", "v1", payload)
		parsed, err := ParseEnvelope(text)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(payload, parsed))
	}
}

func TestFormatVaultEnvelope(t *testing.T) {
	assert.Equal(t, "vault:v1:AAAA", FormatVaultEnvelope([]byte{0, 0, 0}))
}

func TestParseEnvelope_OnlyLastFieldMatters(t *testing.T) {
	payload := randomBytes(t, 64)
	b64 := Encode(payload)

	fromVault, err := ParseEnvelope("vault:v1:" + b64)
	require.NoError(t, err)

	fromAnything, err := ParseEnvelope("anything:without:meaning:" + b64)
	require.NoError(t, err)

	fromBareColon, err := ParseEnvelope(":" + b64)
	require.NoError(t, err)

	assert.Equal(t, payload, fromVault)
	assert.Equal(t, fromVault, fromAnything)
	assert.Equal(t, fromVault, fromBareColon)
}

func TestParseEnvelope_Errors(t *testing.T) {
	t.Run("no separator", func(t *testing.T) {
		_, err := ParseEnvelope(Encode([]byte("payload")))
		require.ErrorIs(t, err, errors.ErrDecode)
		assert.Contains(t, err.Error(), "separator")
	})

	t.Run("invalid final field", func(t *testing.T) {
		_, err := ParseEnvelope("vault:v1:not-base64!!")
		assert.ErrorIs(t, err, errors.ErrDecode)
	})

	t.Run("long input is truncated in message", func(t *testing.T) {
		_, err := ParseEnvelope(string(bytes.Repeat([]byte("A"), 200)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "...")
	})
}

func TestIsEnvelope(t *testing.T) {
	assert.True(t, IsEnvelope("vault:v1:AAAA"))
	assert.False(t, IsEnvelope("AAAA"))
	assert.False(t, IsEnvelope("deadbeef"))
}

func TestHex(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		data := randomBytes(t, 64)
		decoded, err := DecodeHex(EncodeHex(data))
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	})

	t.Run("accepts 0x prefix", func(t *testing.T) {
		decoded, err := DecodeHex("0xdead")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xde, 0xad}, decoded)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeHex("zz")
		assert.ErrorIs(t, err, errors.ErrDecode)
	})
}
