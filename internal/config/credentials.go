package config

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/vaultsign/internal/errors"
)

// TokenSource names where a token was found.
type TokenSource string

// Token sources, in the order ResolveToken consults them.
const (
	TokenSourceEnv    TokenSource = "env"
	TokenSourceFile   TokenSource = "file"
	TokenSourcePrompt TokenSource = "prompt"
)

// PromptFunc asks the operator for a token. It returns
// errors.ErrPromptUnavailable when no terminal is attached.
type PromptFunc func(ctx context.Context) (string, error)

// ResolveToken finds the Vault token: the environment variable named by
// cfg.TokenEnvVar first, then cfg.TokenFile, then prompt when non-nil.
// Surrounding whitespace is trimmed. The token value is never logged.
//
// Returns errors.ErrCredentialMissing when every source comes up empty.
func ResolveToken(ctx context.Context, cfg *VaultConfig, prompt PromptFunc) (string, TokenSource, error) {
	logger := zerolog.Ctx(ctx).With().Str("component", "credentials").Logger()

	if cfg.TokenEnvVar != "" {
		if token := strings.TrimSpace(os.Getenv(cfg.TokenEnvVar)); token != "" {
			logger.Debug().Str("source", string(TokenSourceEnv)).Str("env_var", cfg.TokenEnvVar).Msg("vault token resolved")
			return token, TokenSourceEnv, nil
		}
	}

	if cfg.TokenFile != "" {
		data, err := os.ReadFile(cfg.TokenFile) //#nosec G304 -- path comes from operator config
		if err != nil {
			return "", "", errors.WrapWith(errors.ErrCredentialMissing, err, "read vault.token_file")
		}
		if token := strings.TrimSpace(string(data)); token != "" {
			logger.Debug().Str("source", string(TokenSourceFile)).Str("path", cfg.TokenFile).Msg("vault token resolved")
			return token, TokenSourceFile, nil
		}
		logger.Debug().Str("path", cfg.TokenFile).Msg("token file is empty")
	}

	if prompt != nil {
		token, err := prompt(ctx)
		if err != nil {
			return "", "", errors.WrapWith(errors.ErrCredentialMissing, err, "prompt for token")
		}
		if token = strings.TrimSpace(token); token != "" {
			logger.Debug().Str("source", string(TokenSourcePrompt)).Msg("vault token resolved")
			return token, TokenSourcePrompt, nil
		}
	}

	return "", "", errors.Wrapf(errors.ErrCredentialMissing,
		"set %s or vault.token_file", cfg.TokenEnvVar)
}
