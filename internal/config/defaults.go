package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/vaultsign/internal/constants"
)

// DefaultConfig returns a new Config with the built-in default values.
// These defaults are the base layer that config files, environment
// variables and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Vault: VaultConfig{
			Address:     constants.DefaultVaultAddress,
			Mount:       constants.DefaultTransitMount,
			Timeout:     constants.DefaultVaultTimeout,
			TokenEnvVar: constants.DefaultTokenEnvVar,
		},
		Signing: SigningConfig{},
		Run: RunConfig{
			OnError: constants.OnErrorAbort,
		},
	}
}

// setDefaults configures all default values on the Viper instance.
// IMPORTANT: Keys must match the mapstructure tag names exactly, and every
// key needs a default for VAULTSIGN_* environment overrides to apply.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("vault.address", d.Vault.Address)
	v.SetDefault("vault.namespace", d.Vault.Namespace)
	v.SetDefault("vault.mount", d.Vault.Mount)
	v.SetDefault("vault.timeout", d.Vault.Timeout.String())
	v.SetDefault("vault.token_env_var", d.Vault.TokenEnvVar)
	v.SetDefault("vault.token_file", d.Vault.TokenFile)

	v.SetDefault("signing.key_name", d.Signing.KeyName)
	v.SetDefault("signing.hash_algorithm", d.Signing.HashAlgorithm)
	v.SetDefault("signing.signature_algorithm", d.Signing.SignatureAlgorithm)
	v.SetDefault("signing.prehashed", d.Signing.Prehashed)

	v.SetDefault("run.on_error", d.Run.OnError)
	v.SetDefault("run.action_timeout", "0s")
	v.SetDefault("run.actions_file", d.Run.ActionsFile)
}
