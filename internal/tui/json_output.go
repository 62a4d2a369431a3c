package tui

import (
	"encoding/json"
	"io"

	vserrors "github.com/mrz1836/vaultsign/internal/errors"
)

// JSONOutput writes one JSON document per call for scripts and pipelines.
type JSONOutput struct {
	encoder *json.Encoder
}

// NewJSONOutput creates a new JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{encoder: json.NewEncoder(w)}
}

// jsonMessage is the structured format for Success/Warning/Info messages.
type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// jsonError is the structured format for Error messages.
type jsonError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Success outputs {"type":"success","message":...}.
func (o *JSONOutput) Success(msg string) {
	o.encode(jsonMessage{Type: "success", Message: msg})
}

// Error outputs the user-facing message, the full error chain and the
// suggested action.
func (o *JSONOutput) Error(err error) {
	msg, act := vserrors.Actionable(err)
	out := jsonError{Type: "error", Message: msg, Suggestion: act}
	if detail := err.Error(); detail != msg {
		out.Details = detail
	}
	o.encode(out)
}

// Warning outputs {"type":"warning","message":...}.
func (o *JSONOutput) Warning(msg string) {
	o.encode(jsonMessage{Type: "warning", Message: msg})
}

// Info outputs {"type":"info","message":...}.
func (o *JSONOutput) Info(msg string) {
	o.encode(jsonMessage{Type: "info", Message: msg})
}

// Result outputs a single result document.
func (o *JSONOutput) Result(v ResultView) {
	o.encode(v)
}

// Run outputs the full run document including every result.
func (o *JSONOutput) Run(v RunView) {
	o.encode(v)
}

// Status outputs the status document.
func (o *JSONOutput) Status(v StatusView) {
	o.encode(v)
}

// JSON outputs an arbitrary value as JSON.
func (o *JSONOutput) JSON(v any) error {
	return o.encoder.Encode(v)
}

func (o *JSONOutput) encode(v any) {
	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(v)
}
