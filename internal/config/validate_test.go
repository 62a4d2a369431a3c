package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	vserrors "github.com/mrz1836/vaultsign/internal/errors"
)

// TestValidate_NilConfig tests that nil config returns error
func TestValidate_NilConfig(t *testing.T) {
	t.Parallel()

	err := Validate(nil)
	require.ErrorIs(t, err, vserrors.ErrConfigNil)
}

// TestValidate_DefaultConfig tests that default config is valid
func TestValidate_DefaultConfig(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"https address", func(c *Config) { c.Vault.Address = "https://vault.example.com:8200" }, nil},
		{"relative address", func(c *Config) { c.Vault.Address = "vault:8200" }, vserrors.ErrConfigInvalidVault},
		{"address without host", func(c *Config) { c.Vault.Address = "http://" }, vserrors.ErrConfigInvalidVault},
		{"unparseable address", func(c *Config) { c.Vault.Address = "http://[::1" }, vserrors.ErrConfigInvalidVault},
		{"empty mount", func(c *Config) { c.Vault.Mount = "/" }, vserrors.ErrConfigInvalidVault},
		{"zero timeout", func(c *Config) { c.Vault.Timeout = 0 }, vserrors.ErrConfigInvalidVault},
		{"empty token env var", func(c *Config) { c.Vault.TokenEnvVar = " " }, vserrors.ErrConfigInvalidVault},
		{"pss", func(c *Config) { c.Signing.SignatureAlgorithm = "pss" }, nil},
		{"unknown signature algorithm", func(c *Config) { c.Signing.SignatureAlgorithm = "ecdsa" }, vserrors.ErrConfigInvalidSigning},
		{"continue", func(c *Config) { c.Run.OnError = "continue" }, nil},
		{"unknown policy", func(c *Config) { c.Run.OnError = "retry" }, vserrors.ErrConfigInvalidRun},
		{"negative action timeout", func(c *Config) { c.Run.ActionTimeout = -time.Second }, vserrors.ErrConfigInvalidRun},
		{"missing key name is allowed", func(c *Config) { c.Signing.KeyName = "" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
