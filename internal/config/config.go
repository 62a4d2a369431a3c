// Package config provides configuration management for vaultsign with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (VAULTSIGN_* prefix)
//  3. Project config (.vaultsign/config.yaml)
//  4. Global config (~/.vaultsign/config.yaml)
//  5. Built-in defaults
//
// An explicit config file (--config) replaces both file layers.
//
// The Vault token is deliberately absent from Config. It is resolved at
// runtime by ResolveToken from the environment, a token file or a prompt.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for vaultsign.
type Config struct {
	// Vault contains the connection settings for the Vault server.
	Vault VaultConfig `yaml:"vault" mapstructure:"vault"`

	// Signing contains the transit key and optional sign parameters.
	Signing SigningConfig `yaml:"signing" mapstructure:"signing"`

	// Run contains settings for processing action lists.
	Run RunConfig `yaml:"run" mapstructure:"run"`
}

// VaultConfig contains settings for reaching and authenticating to Vault.
type VaultConfig struct {
	// Address is the base URL of the Vault server.
	// Default: http://127.0.0.1:8200
	Address string `yaml:"address" mapstructure:"address"`

	// Namespace is the Vault Enterprise namespace. Empty means root.
	Namespace string `yaml:"namespace" mapstructure:"namespace"`

	// Mount is the mount path of the Transit secrets engine.
	// Default: transit
	Mount string `yaml:"mount" mapstructure:"mount"`

	// Timeout bounds each HTTP request to Vault.
	// Default: 30 seconds
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TokenEnvVar names the environment variable holding the token.
	// Default: VAULT_TOKEN
	TokenEnvVar string `yaml:"token_env_var" mapstructure:"token_env_var"`

	// TokenFile is a file containing the token, such as a Vault Agent sink.
	// Consulted when the environment variable is unset or empty.
	TokenFile string `yaml:"token_file" mapstructure:"token_file"`
}

// SigningConfig contains settings forwarded to Transit sign and verify calls.
type SigningConfig struct {
	// KeyName is the transit key used for every operation. Required by
	// sign, verify and run.
	KeyName string `yaml:"key_name" mapstructure:"key_name"`

	// HashAlgorithm is sent as hash_algorithm when set (e.g. sha2-256).
	HashAlgorithm string `yaml:"hash_algorithm" mapstructure:"hash_algorithm"`

	// SignatureAlgorithm is sent as signature_algorithm when set
	// (pss or pkcs1v15 for RSA keys).
	SignatureAlgorithm string `yaml:"signature_algorithm" mapstructure:"signature_algorithm"`

	// Prehashed tells Vault the input is already a digest.
	Prehashed bool `yaml:"prehashed" mapstructure:"prehashed"`
}

// RunConfig contains settings for the run command.
type RunConfig struct {
	// OnError is the failure policy: abort or continue.
	// Default: abort
	OnError string `yaml:"on_error" mapstructure:"on_error"`

	// ActionTimeout bounds each sign or verify round trip. Zero disables it.
	ActionTimeout time.Duration `yaml:"action_timeout" mapstructure:"action_timeout"`

	// ActionsFile is the YAML action file used when run gets no --file.
	// Empty runs the built-in demo actions.
	ActionsFile string `yaml:"actions_file" mapstructure:"actions_file"`
}
