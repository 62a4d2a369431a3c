package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockErrorsAreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrMockNetwork, ErrMockBackend)
	assert.NotErrorIs(t, ErrMockBackend, ErrMockPrompt)
}

func TestRecordingSigner(t *testing.T) {
	ctx := context.Background()
	s := &RecordingSigner{VerifyErr: map[int]error{2: ErrMockNetwork}}

	sig, err := s.Sign(ctx, "k", []byte("m"))
	require.NoError(t, err)
	assert.Equal(t, []byte("k|m"), sig)

	valid, err := s.Verify(ctx, "k", []byte("m"), sig)
	require.NoError(t, err)
	assert.True(t, valid)

	_, err = s.Verify(ctx, "k", []byte("m"), sig)
	require.ErrorIs(t, err, ErrMockNetwork)

	calls := s.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "sign", calls[0].Op)
	assert.Equal(t, "verify", calls[1].Op)
	assert.Equal(t, sig, calls[1].Signature)
}
