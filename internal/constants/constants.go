// Package constants provides centralized constant values used throughout vaultsign.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by vaultsign.
const (
	// AppHome is the hidden directory name where vaultsign stores its config and logs.
	// This directory is created in the user's home directory.
	AppHome = ".vaultsign"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// HomeEnvVar overrides the location of AppHome.
	HomeEnvVar = "VAULTSIGN_HOME"

	// EnvPrefix is the prefix for environment variables read by the config layer.
	EnvPrefix = "VAULTSIGN"
)

// Vault connection defaults.
const (
	// DefaultVaultAddress is the address of a local development Vault server.
	DefaultVaultAddress = "http://127.0.0.1:8200"

	// DefaultTransitMount is the default mount path of the Transit secrets engine.
	DefaultTransitMount = "transit"

	// DefaultTokenEnvVar is the environment variable the token is read from.
	DefaultTokenEnvVar = "VAULT_TOKEN"

	// DefaultVaultTimeout bounds every HTTP request made to Vault.
	DefaultVaultTimeout = 30 * time.Second
)

// Signature envelope convention used by the Transit engine.
const (
	// EnvelopeScheme is the leading field of every Transit signature.
	EnvelopeScheme = "vault"

	// EnvelopeVersion is the key version field used when formatting
	// signatures for verification.
	EnvelopeVersion = "v1"

	// EnvelopeSeparator separates the envelope fields.
	EnvelopeSeparator = ":"
)

// Action processing failure policies.
const (
	// OnErrorAbort stops processing at the first failed round trip.
	OnErrorAbort = "abort"

	// OnErrorContinue records the failure and moves on to the next action.
	OnErrorContinue = "continue"
)
