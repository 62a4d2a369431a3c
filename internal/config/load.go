package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/vaultsign/internal/constants"
	"github.com/mrz1836/vaultsign/internal/errors"
)

// newViperInstance creates a Viper instance with defaults and the
// VAULTSIGN_ environment prefix (vault.address -> VAULTSIGN_VAULT_ADDRESS).
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("vault.address", cfg.Vault.Address).
		Str("vault.mount", cfg.Vault.Mount).
		Dur("vault.timeout", cfg.Vault.Timeout).
		Str("signing.key_name", cfg.Signing.KeyName).
		Str("run.on_error", cfg.Run.OnError).
		Str("config_file", v.ConfigFileUsed()).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from defaults, the global and project config
// files and VAULTSIGN_* environment variables. Missing config files are
// not an error.
func Load(ctx context.Context) (*Config, error) {
	global := ""
	if path, err := GlobalConfigPath(); err == nil {
		global = path
	}
	return LoadFromPaths(ctx, ProjectConfigPath(), global)
}

// LoadFile reads configuration from defaults, the single file at path and
// VAULTSIGN_* environment variables. Unlike the layered files, an explicit
// file must exist.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	v := newViperInstance()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}
	return unmarshalAndValidate(ctx, v)
}

// LoadFromPaths loads configuration from specific file paths.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty or missing to skip that level.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" && fileExists(globalConfigPath) {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" && fileExists(projectConfigPath) {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(ctx, v)
}

// LoadWithOverrides loads configuration (from configFile when non-empty,
// otherwise from the layered files) and applies CLI flag overrides, which
// have the highest precedence.
//
// Only non-zero values in overrides are applied. Boolean fields cannot be
// overridden to false this way; callers check cmd.Flags().Changed instead.
func LoadWithOverrides(ctx context.Context, configFile string, overrides *Config) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if configFile != "" {
		cfg, err = LoadFile(ctx, configFile)
	} else {
		cfg, err = Load(ctx)
	}
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}
	return cfg, nil
}

// applyOverrides merges non-zero override values into the config.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Vault.Address != "" {
		cfg.Vault.Address = overrides.Vault.Address
	}
	if overrides.Vault.Namespace != "" {
		cfg.Vault.Namespace = overrides.Vault.Namespace
	}
	if overrides.Vault.Mount != "" {
		cfg.Vault.Mount = overrides.Vault.Mount
	}
	if overrides.Vault.Timeout != 0 {
		cfg.Vault.Timeout = overrides.Vault.Timeout
	}

	if overrides.Signing.KeyName != "" {
		cfg.Signing.KeyName = overrides.Signing.KeyName
	}
	if overrides.Signing.Prehashed {
		cfg.Signing.Prehashed = true
	}

	if overrides.Run.OnError != "" {
		cfg.Run.OnError = overrides.Run.OnError
	}
	if overrides.Run.ActionTimeout != 0 {
		cfg.Run.ActionTimeout = overrides.Run.ActionTimeout
	}
	if overrides.Run.ActionsFile != "" {
		cfg.Run.ActionsFile = overrides.Run.ActionsFile
	}
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// viperDecoderOption returns the decoder configuration for viper unmarshaling.
// Durations may be written as strings ("30s") in files and environment.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
