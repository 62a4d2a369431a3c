package config

import (
	"net/url"
	"strings"

	"github.com/mrz1836/vaultsign/internal/constants"
	"github.com/mrz1836/vaultsign/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - vault.address must be an absolute http or https URL
//   - vault.mount must not be empty
//   - vault.timeout must be positive
//   - vault.token_env_var must not be empty
//   - signing.signature_algorithm, when set, is pss or pkcs1v15
//   - run.on_error is abort or continue
//   - run.action_timeout must not be negative
//
// signing.key_name is not checked here; commands that need it report
// errors.ErrKeyNameRequired.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if err := validateVaultConfig(&cfg.Vault); err != nil {
		return err
	}
	if err := validateSigningConfig(&cfg.Signing); err != nil {
		return err
	}
	return validateRunConfig(&cfg.Run)
}

func validateVaultConfig(cfg *VaultConfig) error {
	u, err := url.Parse(cfg.Address)
	if err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidVault, "vault.address %q: %v", cfg.Address, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Wrapf(errors.ErrConfigInvalidVault,
			"vault.address must be an http(s) URL with a host, got %q", cfg.Address)
	}
	if strings.Trim(cfg.Mount, "/") == "" {
		return errors.Wrap(errors.ErrConfigInvalidVault, "vault.mount must not be empty")
	}
	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidVault,
			"vault.timeout must be positive, got %s", cfg.Timeout)
	}
	if strings.TrimSpace(cfg.TokenEnvVar) == "" {
		return errors.Wrap(errors.ErrConfigInvalidVault, "vault.token_env_var must not be empty")
	}
	return nil
}

func validateSigningConfig(cfg *SigningConfig) error {
	switch cfg.SignatureAlgorithm {
	case "", "pss", "pkcs1v15":
		return nil
	default:
		return errors.Wrapf(errors.ErrConfigInvalidSigning,
			"signing.signature_algorithm must be pss or pkcs1v15, got %q", cfg.SignatureAlgorithm)
	}
}

func validateRunConfig(cfg *RunConfig) error {
	switch cfg.OnError {
	case constants.OnErrorAbort, constants.OnErrorContinue:
	default:
		return errors.Wrapf(errors.ErrConfigInvalidRun,
			"run.on_error must be %s or %s, got %q", constants.OnErrorAbort, constants.OnErrorContinue, cfg.OnError)
	}
	if cfg.ActionTimeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidRun,
			"run.action_timeout must not be negative, got %s", cfg.ActionTimeout)
	}
	return nil
}
