// Package transit is the remote signing client for the Vault Transit
// secrets engine.
//
// A Session is opened once with Connect, which fails fast unless the token
// passes an authentication check. After that each Sign or Verify call is a
// single synchronous request/response round trip: no caching, no retries,
// no background work. The session is read-only after Connect and may be
// reused for any number of sequential calls.
package transit

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/rs/zerolog"

	"github.com/mrz1836/vaultsign/internal/constants"
	"github.com/mrz1836/vaultsign/internal/crypto"
	"github.com/mrz1836/vaultsign/internal/errors"
)

// Options configures Connect.
type Options struct {
	// Address is the base URL of the Vault server.
	Address string

	// Token is the bearer credential sent as X-Vault-Token.
	Token string

	// Namespace is the Vault Enterprise namespace. Empty means root.
	Namespace string

	// Mount is the mount path of the Transit engine. Defaults to "transit".
	Mount string

	// Timeout bounds each HTTP request. Zero keeps the Vault client default.
	Timeout time.Duration

	// Sign holds optional parameters forwarded with every sign request.
	Sign SignOptions
}

// SignOptions are optional Transit sign parameters. Empty values are not sent,
// letting Vault apply the key type's defaults.
type SignOptions struct {
	HashAlgorithm      string
	SignatureAlgorithm string
	Prehashed          bool
}

// TokenInfo describes the token as reported by the authentication check.
type TokenInfo struct {
	DisplayName string
	Policies    []string
	TTL         time.Duration
}

// Session is an authenticated handle to a Vault server.
type Session struct {
	client        *api.Client
	mount         string
	sign          SignOptions
	token         TokenInfo
	authenticated bool
}

// Ensure Session implements crypto.Signer.
var _ crypto.Signer = (*Session)(nil)

// Connect creates a Vault client and performs the authentication check
// (auth/token/lookup-self). Any failure, whether a rejected token, an
// unreachable server or a missing token, returns an error wrapping
// errors.ErrAuthentication. Connect never retries.
func Connect(ctx context.Context, opts Options) (*Session, error) {
	if strings.TrimSpace(opts.Token) == "" {
		return nil, errors.WrapWith(errors.ErrAuthentication, errors.ErrCredentialMissing, "connect")
	}

	cfg := api.DefaultConfig()
	if cfg.Error != nil {
		return nil, errors.WrapWith(errors.ErrAuthentication, cfg.Error, "vault client environment")
	}
	if opts.Address != "" {
		cfg.Address = opts.Address
	}
	cfg.MaxRetries = 0
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, errors.WrapWith(errors.ErrAuthentication, err, "create vault client")
	}
	// NewClient also reads VAULT_TOKEN and VAULT_NAMESPACE; Options is the
	// only source for both.
	client.SetToken(opts.Token)
	if opts.Namespace != "" {
		client.SetNamespace(opts.Namespace)
	} else {
		client.ClearNamespace()
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "transit").Logger()

	start := time.Now()
	secret, err := client.Auth().Token().LookupSelfWithContext(ctx)
	logger.Debug().
		Str("address", client.Address()).
		Dur("duration", time.Since(start)).
		Bool("ok", err == nil && secret != nil).
		Msg("authentication check")
	if err != nil {
		return nil, errors.WrapWith(errors.ErrAuthentication, err, "token lookup")
	}
	if secret == nil {
		return nil, errors.WrapWith(errors.ErrAuthentication, errors.ErrMalformedResponse, "token lookup")
	}

	mount := strings.Trim(opts.Mount, "/")
	if mount == "" {
		mount = constants.DefaultTransitMount
	}

	return &Session{
		client:        client,
		mount:         mount,
		sign:          opts.Sign,
		token:         tokenInfo(secret, logger),
		authenticated: true,
	}, nil
}

// tokenInfo extracts the descriptive token fields from a lookup-self response.
// These fields are informational; a lookup that succeeded but omits them
// still authenticates the session.
func tokenInfo(secret *api.Secret, logger zerolog.Logger) TokenInfo {
	var info TokenInfo
	if name, ok := secret.Data["display_name"].(string); ok {
		info.DisplayName = name
	}
	policies, err := secret.TokenPolicies()
	if err != nil {
		logger.Debug().Err(err).Msg("token policies unavailable")
	}
	info.Policies = policies
	ttl, err := secret.TokenTTL()
	if err != nil {
		logger.Debug().Err(err).Msg("token ttl unavailable")
	}
	info.TTL = ttl
	return info
}

// Address returns the Vault address the session talks to.
func (s *Session) Address() string {
	if s == nil || s.client == nil {
		return ""
	}
	return s.client.Address()
}

// Namespace returns the namespace sent with every request. Empty means root.
func (s *Session) Namespace() string {
	if s == nil || s.client == nil {
		return ""
	}
	return s.client.Namespace()
}

// Mount returns the Transit mount path.
func (s *Session) Mount() string {
	if s == nil {
		return ""
	}
	return s.mount
}

// Token returns the token details captured by the authentication check.
func (s *Session) Token() TokenInfo {
	if s == nil {
		return TokenInfo{}
	}
	return s.token
}

// Authenticated reports whether the session passed the authentication check.
func (s *Session) Authenticated() bool {
	return s != nil && s.client != nil && s.authenticated
}

// ready refuses to use a session that never authenticated.
func (s *Session) ready() error {
	if !s.Authenticated() {
		return errors.Wrap(errors.ErrAuthentication, "session not authenticated")
	}
	return nil
}
