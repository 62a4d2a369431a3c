package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/vaultsign/internal/action"
	"github.com/mrz1836/vaultsign/internal/codec"
	"github.com/mrz1836/vaultsign/internal/config"
	"github.com/mrz1836/vaultsign/internal/errors"
	"github.com/mrz1836/vaultsign/internal/tui"
)

// Signature argument formats accepted by verify.
const (
	SignatureFormatAuto     = "auto"
	SignatureFormatHex      = "hex"
	SignatureFormatBase64   = "base64"
	SignatureFormatEnvelope = "envelope"
)

// verifyOptions contains the flags of the verify command.
type verifyOptions struct {
	key             string
	base64          bool
	signatureFormat string
}

// AddVerifyCommand adds the verify command to the root command.
func AddVerifyCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newVerifyCmd(flags))
}

// newVerifyCmd creates the verify command.
func newVerifyCmd(flags *GlobalFlags) *cobra.Command {
	var opts verifyOptions

	cmd := &cobra.Command{
		Use:   "verify <message> <signature>",
		Short: "Verify a signature with a Transit key",
		Long: `Verify a signature over a message with the configured Transit key.

An invalid signature is a normal outcome: it is reported as
"Verification Result: false" and the command still exits 0. Non-zero exit
codes mean the verification itself could not be carried out.

The signature may be hex, base64 or a vault:v1: envelope. With the default
--signature-format auto, text containing a colon is an envelope and anything
else is hex.

Examples:
  vaultsign verify "Hello, Vault!" vault:v1:MEUCIQ...
  vaultsign verify "Hello, Vault!" 3f1a9c... --key radu-key-ed25519`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), cmd, cmd.OutOrStdout(), flags, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "transit key name (overrides signing.key_name)")
	cmd.Flags().BoolVar(&opts.base64, "base64", false, "treat <message> as base64-encoded bytes")
	cmd.Flags().StringVar(&opts.signatureFormat, "signature-format", SignatureFormatAuto,
		"encoding of <signature> (auto|hex|base64|envelope)")

	return cmd
}

// runVerify verifies one signature and prints the outcome.
func runVerify(ctx context.Context, _ *cobra.Command, w io.Writer, flags *GlobalFlags, opts verifyOptions, msgArg, sigArg string) error {
	message, err := decodeMessage(msgArg, opts.base64)
	if err != nil {
		return err
	}
	signature, err := decodeSignature(sigArg, opts.signatureFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, flags, &config.Config{Signing: config.SigningConfig{KeyName: opts.key}})
	if err != nil {
		return err
	}
	key, err := requireKey(cfg)
	if err != nil {
		return err
	}

	session, err := openSession(ctx, cfg, flags.Output)
	if err != nil {
		return err
	}

	results, err := action.NewProcessor(session, key, action.WithActionTimeout(cfg.Run.ActionTimeout)).
		Process(ctx, []action.Action{action.NewVerify(message, signature)})
	if err != nil {
		return err
	}

	tui.NewOutput(w, flags.Output).Result(tui.NewResultView(results[0]))
	return nil
}

// decodeSignature decodes the signature argument in the given format.
func decodeSignature(text, format string) ([]byte, error) {
	text = strings.TrimSpace(text)

	var (
		signature []byte
		err       error
	)
	switch format {
	case SignatureFormatAuto:
		if codec.IsEnvelope(text) {
			signature, err = codec.ParseEnvelope(text)
		} else {
			signature, err = codec.DecodeHex(text)
		}
	case SignatureFormatHex:
		signature, err = codec.DecodeHex(text)
	case SignatureFormatBase64:
		signature, err = codec.Decode(text)
	case SignatureFormatEnvelope:
		signature, err = codec.ParseEnvelope(text)
	default:
		return nil, errors.NewExitCode2Error(fmt.Errorf("%w: --signature-format %q must be one of auto, hex, base64, envelope",
			errors.ErrInvalidArgument, format))
	}
	if err != nil {
		return nil, errors.NewExitCode2Error(errors.Wrap(err, "signature"))
	}
	return signature, nil
}
