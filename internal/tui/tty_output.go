package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	vserrors "github.com/mrz1836/vaultsign/internal/errors"
)

// TTYOutput provides styled terminal output using Lip Gloss.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
}

// NewTTYOutput creates a new TTYOutput. It respects NO_COLOR.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{w: w, styles: NewOutputStyles()}
}

// Success outputs a success message with a ✓ icon.
func (o *TTYOutput) Success(msg string) {
	o.println(o.styles.Success.Render("✓ " + msg))
}

// Error outputs the user-facing message with a ✗ icon, the suggested
// action when one exists, and the full error chain dimmed.
func (o *TTYOutput) Error(err error) {
	msg, act := vserrors.Actionable(err)
	o.println(o.styles.Error.Render("✗ " + msg))
	if act != "" {
		o.println(o.styles.Dim.Render("  ▸ Try: " + act))
	}
	if detail := err.Error(); detail != msg {
		o.println(o.styles.Dim.Render("  " + detail))
	}
}

// Warning outputs a warning message with a ⚠ icon.
func (o *TTYOutput) Warning(msg string) {
	o.println(o.styles.Warning.Render("⚠ " + msg))
}

// Info outputs an informational message.
func (o *TTYOutput) Info(msg string) {
	o.println(o.styles.Info.Render(msg))
}

// Result prints one action result in the layout of the demo run:
//
//	Signing Message: Hello, Vault!
//	Signature: 3f1a...
func (o *TTYOutput) Result(v ResultView) {
	o.println("")
	message := v.Message
	if message == "" && v.MessageBase64 != "" {
		message = "(base64) " + v.MessageBase64
	}

	switch v.Action {
	case "sign":
		o.field("Signing Message:", message)
		if v.Error == "" {
			o.field("Signature:", v.SignatureHex)
			o.println(o.styles.Dim.Render("  " + v.Envelope))
		}
	default:
		o.field("Verifying Message:", message)
		if v.SignatureHex != "" || v.Envelope != "" {
			o.field("With Signature:", v.SignatureHex)
		}
		if v.Valid != nil {
			style := o.styles.Warning
			if *v.Valid {
				style = o.styles.Success
			}
			o.field("Verification Result:", style.Render(fmt.Sprintf("%t", *v.Valid)))
		}
	}

	if v.Error != "" {
		o.println(o.styles.Error.Render("✗ " + v.Error))
		return
	}
	o.println(o.styles.Dim.Render(fmt.Sprintf("  %dms", v.DurationMS)))
}

// Run prints the closing summary. Individual results are streamed via Result.
func (o *TTYOutput) Run(v RunView) {
	o.println("")
	summary := fmt.Sprintf("%d succeeded, %d failed", v.Succeeded, v.Failed)
	if v.Skipped > 0 {
		summary += fmt.Sprintf(", %d not run", v.Skipped)
	}
	line := fmt.Sprintf("Processed %d actions with key %s (%s in %s)", len(v.Results), v.Key, summary, v.Duration)
	if v.Failed > 0 || v.Skipped > 0 {
		o.Warning(line)
	} else {
		o.Success(line)
	}
	o.println(o.styles.Dim.Render("  run " + v.RunID))
}

// Status prints the status report.
func (o *TTYOutput) Status(v StatusView) {
	o.field("Address:", v.Address)
	if v.Namespace != "" {
		o.field("Namespace:", v.Namespace)
	}
	o.field("Mount:", v.Mount)
	o.field("Version:", v.Version)
	if v.ClusterName != "" {
		o.field("Cluster:", v.ClusterName)
	}
	o.field("Sealed:", fmt.Sprintf("%t", v.Sealed))
	o.field("Standby:", fmt.Sprintf("%t", v.Standby))
	if v.TokenName != "" {
		o.field("Token:", v.TokenName)
	}
	if len(v.Policies) > 0 {
		o.field("Policies:", strings.Join(v.Policies, ", "))
	}
	if v.TokenTTL != "" {
		o.field("Token TTL:", v.TokenTTL)
	}
	if v.Authenticated && !v.Sealed {
		o.Success("Vault is reachable and the token is valid")
	} else if v.Sealed {
		o.Warning("Vault is sealed")
	}
}

// JSON outputs an arbitrary value as indented JSON.
func (o *TTYOutput) JSON(v any) error {
	encoder := json.NewEncoder(o.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (o *TTYOutput) field(label, value string) {
	o.println(o.styles.Label.Render(label) + " " + o.styles.Value.Render(value))
}

func (o *TTYOutput) println(s string) {
	_, _ = fmt.Fprintln(o.w, s)
}
