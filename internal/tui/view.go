package tui

import (
	"time"
	"unicode/utf8"

	"github.com/mrz1836/vaultsign/internal/action"
	"github.com/mrz1836/vaultsign/internal/codec"
)

// ResultView is the rendered form of one action result.
type ResultView struct {
	Index         int    `json:"index"`
	Action        string `json:"action"`
	Message       string `json:"message,omitempty"`
	MessageBase64 string `json:"message_base64"`
	SignatureHex  string `json:"signature_hex,omitempty"`
	Envelope      string `json:"signature,omitempty"`
	Valid         *bool  `json:"valid,omitempty"`
	DurationMS    int64  `json:"duration_ms"`
	Error         string `json:"error,omitempty"`
}

// NewResultView converts an action result for display. The message is shown
// as text only when it is valid UTF-8; its base64 form is always included.
func NewResultView(r action.Result) ResultView {
	v := ResultView{
		Index:         r.Index,
		Action:        string(r.Kind),
		MessageBase64: codec.Encode(r.Message),
		DurationMS:    r.Duration.Milliseconds(),
	}
	if utf8.Valid(r.Message) {
		v.Message = string(r.Message)
	}
	if r.Signature != nil {
		v.SignatureHex = codec.EncodeHex(r.Signature)
		v.Envelope = codec.FormatVaultEnvelope(r.Signature)
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
		return v
	}
	if r.Kind == action.KindVerify {
		valid := r.Valid
		v.Valid = &valid
	}
	return v
}

// RunView summarizes a processed action list.
type RunView struct {
	RunID     string       `json:"run_id"`
	Key       string       `json:"key"`
	Source    string       `json:"source"`
	Results   []ResultView `json:"results"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Duration  string       `json:"duration"`
}

// NewRunView builds the summary for results out of total actions.
func NewRunView(runID, key, source string, total int, results []action.Result, elapsed time.Duration) RunView {
	v := RunView{
		RunID:    runID,
		Key:      key,
		Source:   source,
		Results:  make([]ResultView, 0, len(results)),
		Skipped:  total - len(results),
		Duration: elapsed.Round(time.Millisecond).String(),
	}
	for _, r := range results {
		v.Results = append(v.Results, NewResultView(r))
		if r.OK() {
			v.Succeeded++
		} else {
			v.Failed++
		}
	}
	return v
}

// StatusView reports the authentication check and server health.
type StatusView struct {
	Address       string   `json:"address"`
	Namespace     string   `json:"namespace,omitempty"`
	Mount         string   `json:"mount"`
	Authenticated bool     `json:"authenticated"`
	TokenName     string   `json:"token_display_name,omitempty"`
	Policies      []string `json:"token_policies,omitempty"`
	TokenTTL      string   `json:"token_ttl,omitempty"`
	Initialized   bool     `json:"initialized"`
	Sealed        bool     `json:"sealed"`
	Standby       bool     `json:"standby"`
	Version       string   `json:"version,omitempty"`
	ClusterName   string   `json:"cluster_name,omitempty"`
}
