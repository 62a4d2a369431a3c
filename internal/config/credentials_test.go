package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vserrors "github.com/mrz1836/vaultsign/internal/errors"
	"github.com/mrz1836/vaultsign/internal/testutil"
)

func TestResolveToken(t *testing.T) {
	ctx := context.Background()
	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("hvs.from-file\n"), 0o600))

	prompt := func(context.Context) (string, error) { return " hvs.typed ", nil }

	t.Run("environment first", func(t *testing.T) {
		t.Setenv("VS_TEST_TOKEN", "hvs.from-env")
		token, src, err := ResolveToken(ctx, &VaultConfig{TokenEnvVar: "VS_TEST_TOKEN", TokenFile: tokenFile}, prompt)
		require.NoError(t, err)
		assert.Equal(t, "hvs.from-env", token)
		assert.Equal(t, TokenSourceEnv, src)
	})

	t.Run("file when env is empty", func(t *testing.T) {
		t.Setenv("VS_TEST_TOKEN", "")
		token, src, err := ResolveToken(ctx, &VaultConfig{TokenEnvVar: "VS_TEST_TOKEN", TokenFile: tokenFile}, prompt)
		require.NoError(t, err)
		assert.Equal(t, "hvs.from-file", token)
		assert.Equal(t, TokenSourceFile, src)
	})

	t.Run("prompt last", func(t *testing.T) {
		t.Setenv("VS_TEST_TOKEN", "")
		token, src, err := ResolveToken(ctx, &VaultConfig{TokenEnvVar: "VS_TEST_TOKEN"}, prompt)
		require.NoError(t, err)
		assert.Equal(t, "hvs.typed", token)
		assert.Equal(t, TokenSourcePrompt, src)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv("VS_TEST_TOKEN", "")
		_, _, err := ResolveToken(ctx, &VaultConfig{TokenEnvVar: "VS_TEST_TOKEN"}, nil)
		require.ErrorIs(t, err, vserrors.ErrCredentialMissing)
		assert.Contains(t, err.Error(), "VS_TEST_TOKEN")
	})

	t.Run("unreadable token file", func(t *testing.T) {
		t.Setenv("VS_TEST_TOKEN", "")
		_, _, err := ResolveToken(ctx, &VaultConfig{TokenEnvVar: "VS_TEST_TOKEN", TokenFile: filepath.Join(t.TempDir(), "missing")}, prompt)
		require.ErrorIs(t, err, vserrors.ErrCredentialMissing)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("prompt failure", func(t *testing.T) {
		t.Setenv("VS_TEST_TOKEN", "")
		failing := func(context.Context) (string, error) { return "", testutil.ErrMockPrompt }
		_, _, err := ResolveToken(ctx, &VaultConfig{TokenEnvVar: "VS_TEST_TOKEN"}, failing)
		require.ErrorIs(t, err, vserrors.ErrCredentialMissing)
		require.ErrorIs(t, err, testutil.ErrMockPrompt)
	})
}
