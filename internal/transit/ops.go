package transit

import (
	"context"
	"net/url"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/rs/zerolog"

	"github.com/mrz1836/vaultsign/internal/codec"
	"github.com/mrz1836/vaultsign/internal/errors"
)

// Health is the subset of sys/health reported by the status command.
type Health struct {
	Initialized bool   `json:"initialized"`
	Sealed      bool   `json:"sealed"`
	Standby     bool   `json:"standby"`
	Version     string `json:"version"`
	ClusterName string `json:"cluster_name"`
}

// Sign asks Transit to sign message with the named key and returns the raw
// signature bytes extracted from the returned envelope.
//
// Transport and backend failures, a response without a signature and an
// undecodable envelope all return an error wrapping errors.ErrSigning.
func (s *Session) Sign(ctx context.Context, keyName string, message []byte) ([]byte, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if keyName == "" {
		return nil, errors.Wrap(errors.ErrKeyNameRequired, "transit sign")
	}

	data := map[string]any{
		"input": codec.Encode(message),
	}
	if s.sign.HashAlgorithm != "" {
		data["hash_algorithm"] = s.sign.HashAlgorithm
	}
	if s.sign.SignatureAlgorithm != "" {
		data["signature_algorithm"] = s.sign.SignatureAlgorithm
	}
	if s.sign.Prehashed {
		data["prehashed"] = true
	}

	secret, err := s.write(ctx, "sign", keyName, data)
	if err != nil {
		return nil, errors.WrapWith(errors.ErrSigning, err, "transit sign with key "+keyName)
	}

	raw, err := field[string](secret, "signature")
	if err != nil {
		return nil, errors.WrapWith(errors.ErrSigning, err, "transit sign with key "+keyName)
	}

	sig, err := codec.ParseEnvelope(raw)
	if err != nil {
		return nil, errors.WrapWith(errors.ErrSigning, err, "transit sign with key "+keyName)
	}
	return sig, nil
}

// Verify asks Transit whether signature is valid for message under the
// named key. The signature is sent as a "vault:v1:" envelope.
//
// An invalid signature returns (false, nil). Transport and backend failures
// and a response without a validity flag return an error wrapping
// errors.ErrVerification.
func (s *Session) Verify(ctx context.Context, keyName string, message, signature []byte) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	if keyName == "" {
		return false, errors.Wrap(errors.ErrKeyNameRequired, "transit verify")
	}

	data := map[string]any{
		"input":     codec.Encode(message),
		"signature": codec.FormatVaultEnvelope(signature),
	}
	if s.sign.HashAlgorithm != "" {
		data["hash_algorithm"] = s.sign.HashAlgorithm
	}
	if s.sign.SignatureAlgorithm != "" {
		data["signature_algorithm"] = s.sign.SignatureAlgorithm
	}
	if s.sign.Prehashed {
		data["prehashed"] = true
	}

	secret, err := s.write(ctx, "verify", keyName, data)
	if err != nil {
		return false, errors.WrapWith(errors.ErrVerification, err, "transit verify with key "+keyName)
	}

	valid, err := field[bool](secret, "valid")
	if err != nil {
		return false, errors.WrapWith(errors.ErrVerification, err, "transit verify with key "+keyName)
	}
	return valid, nil
}

// Health reads sys/health. It does not change the session.
func (s *Session) Health(ctx context.Context) (*Health, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	resp, err := s.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "vault health")
	}
	return &Health{
		Initialized: resp.Initialized,
		Sealed:      resp.Sealed,
		Standby:     resp.Standby,
		Version:     resp.Version,
		ClusterName: resp.ClusterName,
	}, nil
}

// write performs one Transit round trip and logs it.
func (s *Session) write(ctx context.Context, op, keyName string, data map[string]any) (*api.Secret, error) {
	path := s.mount + "/" + op + "/" + url.PathEscape(keyName)

	start := time.Now()
	secret, err := s.client.Logical().WriteWithContext(ctx, path, data)

	event := zerolog.Ctx(ctx).Debug()
	if err != nil {
		event = zerolog.Ctx(ctx).Warn().Err(err)
	}
	event.
		Str("component", "transit").
		Str("op", op).
		Str("key", keyName).
		Int("input_bytes", len(data["input"].(string))).
		Dur("duration", time.Since(start)).
		Msg("transit round trip")

	return secret, err
}

// field returns secret.Data[name] as T, failing with errors.ErrMalformedResponse
// when the response carries no data or the field is absent or of another type.
func field[T any](secret *api.Secret, name string) (T, error) {
	var zero T
	if secret == nil || secret.Data == nil {
		return zero, errors.Wrap(errors.ErrMalformedResponse, "response has no data")
	}
	raw, ok := secret.Data[name]
	if !ok {
		return zero, errors.Wrapf(errors.ErrMalformedResponse, "response has no %q field", name)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, errors.Wrapf(errors.ErrMalformedResponse, "field %q has type %T", name, raw)
	}
	return v, nil
}
