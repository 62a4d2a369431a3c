package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/vaultsign/internal/config"
	"github.com/mrz1836/vaultsign/internal/errors"
	"github.com/mrz1836/vaultsign/internal/transit"
	"github.com/mrz1836/vaultsign/internal/tui"
)

// loadConfig loads the layered configuration, or the --config file when
// given, and applies the command's flag overrides.
func loadConfig(ctx context.Context, flags *GlobalFlags, overrides *config.Config) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(ctx, flags.ConfigFile, overrides)
	if err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return cfg, nil
}

// requireKey returns the configured transit key name or ErrKeyNameRequired.
func requireKey(cfg *config.Config) (string, error) {
	key := strings.TrimSpace(cfg.Signing.KeyName)
	if key == "" {
		return "", errors.NewExitCode2Error(errors.ErrKeyNameRequired)
	}
	return key, nil
}

// openSession resolves the Vault token and performs the authentication
// check. The masked token prompt is offered only for text output; JSON
// callers are expected to be non-interactive.
func openSession(ctx context.Context, cfg *config.Config, format string) (*transit.Session, error) {
	var prompt config.PromptFunc
	if format == OutputText {
		prompt = tui.PromptToken
	}

	token, source, err := config.ResolveToken(ctx, &cfg.Vault, prompt)
	if err != nil {
		return nil, err
	}

	session, err := transit.Connect(ctx, transit.Options{
		Address:   cfg.Vault.Address,
		Token:     token,
		Namespace: cfg.Vault.Namespace,
		Mount:     cfg.Vault.Mount,
		Timeout:   cfg.Vault.Timeout,
		Sign: transit.SignOptions{
			HashAlgorithm:      cfg.Signing.HashAlgorithm,
			SignatureAlgorithm: cfg.Signing.SignatureAlgorithm,
			Prehashed:          cfg.Signing.Prehashed,
		},
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("address", session.Address()).
		Str("mount", session.Mount()).
		Str("token_source", string(source)).
		Str("token_display_name", session.Token().DisplayName).
		Msg("vault session established")
	return session, nil
}
