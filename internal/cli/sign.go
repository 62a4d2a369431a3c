package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/vaultsign/internal/action"
	"github.com/mrz1836/vaultsign/internal/codec"
	"github.com/mrz1836/vaultsign/internal/config"
	"github.com/mrz1836/vaultsign/internal/errors"
	"github.com/mrz1836/vaultsign/internal/tui"
)

// signOptions contains the flags of the sign command.
type signOptions struct {
	key    string
	base64 bool
}

// AddSignCommand adds the sign command to the root command.
func AddSignCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newSignCmd(flags))
}

// newSignCmd creates the sign command.
func newSignCmd(flags *GlobalFlags) *cobra.Command {
	var opts signOptions

	cmd := &cobra.Command{
		Use:   "sign <message>",
		Short: "Sign a message with a Transit key",
		Long: `Sign a message with the configured Transit key.

The signature is printed as hex together with the vault:v1: envelope that
verify accepts.

Examples:
  vaultsign sign "Hello, Vault!" --key radu-key-ed25519
  vaultsign sign --base64 SGVsbG8sIFZhdWx0IQ== -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd.Context(), cmd, cmd.OutOrStdout(), flags, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "transit key name (overrides signing.key_name)")
	cmd.Flags().BoolVar(&opts.base64, "base64", false, "treat <message> as base64-encoded bytes")

	return cmd
}

// runSign signs one message and prints its result.
func runSign(ctx context.Context, _ *cobra.Command, w io.Writer, flags *GlobalFlags, opts signOptions, arg string) error {
	message, err := decodeMessage(arg, opts.base64)
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
		Process(ctx, []action.Action{action.NewSign(message)})
	if err != nil {
		return err
	}

	tui.NewOutput(w, flags.Output).Result(tui.NewResultView(results[0]))
	return nil
}

// decodeMessage returns the message bytes of a positional argument.
func decodeMessage(arg string, isBase64 bool) ([]byte, error) {
	if !isBase64 {
		return []byte(arg), nil
	}
	message, err := codec.Decode(arg)
	if err != nil {
		return nil, errors.NewExitCode2Error(errors.Wrap(err, "message"))
	}
	return message, nil
}
