package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/vaultsign/internal/action"
	"github.com/mrz1836/vaultsign/internal/testutil"
)

func TestNewResultView_Sign(t *testing.T) {
	v := NewResultView(action.Result{
		Index:     0,
		Kind:      action.KindSign,
		Message:   []byte("Hello, Vault!"),
		Signature: []byte{0xde, 0xad, 0xbe, 0xef},
		Duration:  12 * time.Millisecond,
	})

	assert.Equal(t, "sign", v.Action)
	assert.Equal(t, "Hello, Vault!", v.Message)
	assert.Equal(t, "SGVsbG8sIFZhdWx0IQ==", v.MessageBase64)
	assert.Equal(t, "deadbeef", v.SignatureHex)
	assert.Equal(t, "vault:v1:3q2+7w==", v.Envelope)
	assert.Nil(t, v.Valid)
	assert.Equal(t, int64(12), v.DurationMS)
	assert.Empty(t, v.Error)
}

func TestNewResultView_Verify(t *testing.T) {
	v := NewResultView(action.Result{
		Kind:      action.KindVerify,
		Message:   []byte{0xff, 0xfe},
		Signature: make([]byte, 2),
	})

	require.NotNil(t, v.Valid)
	assert.False(t, *v.Valid)
	assert.Empty(t, v.Message)
	assert.Equal(t, "//4=", v.MessageBase64)
	assert.Equal(t, "0000", v.SignatureHex)
}

func TestNewResultView_Failure(t *testing.T) {
	v := NewResultView(action.Result{Kind: action.KindVerify, Err: testutil.ErrMockNetwork})

	assert.Nil(t, v.Valid)
	assert.Equal(t, "network error", v.Error)
	assert.Empty(t, v.SignatureHex)
}

func TestNewRunView(t *testing.T) {
	results := []action.Result{
		{Index: 0, Kind: action.KindSign, Signature: []byte{1}},
		{Index: 1, Kind: action.KindSign, Err: testutil.ErrMockBackend},
	}

	v := NewRunView("run-1", "demo", "built-in demo", 3, results, 1500*time.Microsecond)
	assert.Equal(t, 1, v.Succeeded)
	assert.Equal(t, 1, v.Failed)
	assert.Equal(t, 1, v.Skipped)
	assert.Len(t, v.Results, 2)
	assert.Equal(t, "2ms", v.Duration)
}
