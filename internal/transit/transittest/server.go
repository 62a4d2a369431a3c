// Package transittest provides an in-process fake of the Vault HTTP API
// subset used by vaultsign: token lookup, sys/health and the Transit
// sign/verify endpoints. Keys are real Ed25519 keys generated per name, so
// signatures produced by the fake verify exactly as Vault's would.
package transittest

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// DefaultToken is the token accepted by a Server unless WithToken overrides it.
const DefaultToken = "hvs.test-token"

// Call records one request received by the Server.
type Call struct {
	Method    string
	Path      string
	Namespace string
	Body      map[string]any
}

// Server is a fake Vault server backed by httptest.
type Server struct {
	srv   *httptest.Server
	token string
	mount string

	mu     sync.Mutex
	keys   map[string]ed25519.PrivateKey
	calls  []Call
	faults map[string]int
}

// Option configures a Server.
type Option func(*Server)

// WithToken sets the only token the Server accepts.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithMount sets the Transit mount path (default "transit").
func WithMount(mount string) Option {
	return func(s *Server) { s.mount = strings.Trim(mount, "/") }
}

// WithKey creates an Ed25519 signing key with the given name.
// Signing with a key that was never created fails like Vault does.
func WithKey(name string) Option {
	return func(s *Server) {
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			panic(err)
		}
		s.keys[name] = priv
	}
}

// NewServer starts a Server and registers its shutdown with t.Cleanup.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		token:  DefaultToken,
		mount:  "transit",
		keys:   make(map[string]ed25519.PrivateKey),
		faults: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the base address of the Server.
func (s *Server) URL() string {
	return s.srv.URL
}

// Token returns the token the Server accepts.
func (s *Server) Token() string {
	return s.token
}

// PublicKey returns the public half of the named key, or nil.
func (s *Server) PublicKey(name string) ed25519.PublicKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	priv, ok := s.keys[name]
	if !ok {
		return nil
	}
	return priv.Public().(ed25519.PublicKey)
}

// Fail makes every later request whose path ends with suffix answer with
// the given HTTP status.
func (s *Server) Fail(suffix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[suffix] = status
}

// Calls returns a copy of every request received so far, in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// TransitCalls returns only the sign and verify requests, in arrival order.
func (s *Server) TransitCalls() []Call {
	prefix := "/v1/" + s.mount + "/"
	var out []Call
	for _, c := range s.Calls() {
		if strings.HasPrefix(c.Path, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method:    r.Method,
		Path:      r.URL.Path,
		Namespace: r.Header.Get("X-Vault-Namespace"),
		Body:      body,
	})
	status, faulted := s.faultFor(r.URL.Path)
	s.mu.Unlock()

	if faulted {
		writeErrors(w, status, "injected failure")
		return
	}

	if r.URL.Path == "/v1/sys/health" {
		writeJSON(w, http.StatusOK, map[string]any{
			"initialized":  true,
			"sealed":       false,
			"standby":      false,
			"version":      "1.15.6",
			"cluster_name": "vault-cluster-test",
		})
		return
	}

	if r.Header.Get("X-Vault-Token") != s.token {
		writeErrors(w, http.StatusForbidden, "permission denied")
		return
	}

	switch {
	case r.URL.Path == "/v1/auth/token/lookup-self" && r.Method == http.MethodGet:
		writeData(w, map[string]any{
			"display_name": "token-vaultsign",
			"policies":     []string{"default", "transit-signer"},
			"ttl":          3600,
		})
	case r.Method == http.MethodPut || r.Method == http.MethodPost:
		s.handleTransit(w, r.URL.Path, body)
	default:
		writeErrors(w, http.StatusNotFound, "unsupported path")
	}
}

func (s *Server) faultFor(path string) (int, bool) {
	for suffix, status := range s.faults {
		if strings.HasSuffix(path, suffix) {
			return status, true
		}
	}
	return 0, false
}

func (s *Server) handleTransit(w http.ResponseWriter, path string, body map[string]any) {
	rest, ok := strings.CutPrefix(path, "/v1/"+s.mount+"/")
	if !ok {
		writeErrors(w, http.StatusNotFound, "no handler for route")
		return
	}
	op, keyName, ok := strings.Cut(rest, "/")
	if !ok || keyName == "" {
		writeErrors(w, http.StatusNotFound, "no handler for route")
		return
	}

	s.mu.Lock()
	priv, found := s.keys[keyName]
	s.mu.Unlock()
	if !found {
		writeErrors(w, http.StatusBadRequest, "signing key not found")
		return
	}

	input, err := base64.StdEncoding.DecodeString(stringValue(body, "input"))
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "unable to decode input as base64")
		return
	}

	switch op {
	case "sign":
		sig := ed25519.Sign(priv, input)
		writeData(w, map[string]any{
			"signature":   "vault:v1:" + base64.StdEncoding.EncodeToString(sig),
			"key_version": 1,
		})
	case "verify":
		raw := stringValue(body, "signature")
		if !strings.HasPrefix(raw, "vault:v") {
			writeErrors(w, http.StatusBadRequest, "invalid signature: no prefix")
			return
		}
		sig, err := base64.StdEncoding.DecodeString(raw[strings.LastIndex(raw, ":")+1:])
		if err != nil {
			writeErrors(w, http.StatusBadRequest, "invalid base64 signature value")
			return
		}
		pub := priv.Public().(ed25519.PublicKey)
		writeData(w, map[string]any{"valid": ed25519.Verify(pub, input, sig)})
	default:
		writeErrors(w, http.StatusNotFound, "no handler for route")
	}
}

func stringValue(body map[string]any, key string) string {
	v, _ := body[key].(string)
	return v
}

func writeData(w http.ResponseWriter, data map[string]any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"request_id":     "00000000-0000-0000-0000-000000000000",
		"lease_id":       "",
		"renewable":      false,
		"lease_duration": 0,
		"data":           data,
		"wrap_info":      nil,
		"warnings":       nil,
		"auth":           nil,
	})
}

func writeErrors(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"errors": []string{msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
