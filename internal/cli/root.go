// Package cli provides the command-line interface for vaultsign.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/vaultsign/internal/errors"
	"github.com/mrz1836/vaultsign/internal/signal"
	"github.com/mrz1836/vaultsign/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string `json:"version"`
	// Commit is the git commit hash.
	Commit string `json:"commit"`
	// Date is the build date.
	Date string `json:"date"`
}

// newRootCmd creates and returns the root command for the vaultsign CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "vaultsign",
		Short: "Sign and verify messages with HashiCorp Vault Transit keys",
		Long: `vaultsign signs and verifies messages with keys held by the Vault Transit
secrets engine. Private keys never leave Vault: every signature is one
request/response round trip against <mount>/sign/<key> or <mount>/verify/<key>.

The Vault token is read from VAULT_TOKEN (see vault.token_env_var), from
vault.token_file, or prompted for on a terminal.`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without subcommands.
		// This ensures PersistentPreRunE is called for flag validation.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd, flags); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return errors.NewExitCode2Error(fmt.Errorf("%w: %q must be one of %v",
					errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats()))
			}

			logger := InitLogger(flags.Verbose, flags.Quiet)

			// Library packages log through zerolog.Ctx.
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
		// Errors are rendered by Execute in the selected output format.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddSignCommand(cmd, flags)
	AddVerifyCommand(cmd, flags)
	AddRunCommand(cmd, flags)
	AddStatusCommand(cmd, flags)
	AddVersionCommand(cmd, flags, info)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	info = info.withDefaults()
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// withDefaults fills unset build fields for development builds.
func (info BuildInfo) withDefaults() BuildInfo {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

// outputFormat returns the validated output format, falling back to text
// so that errors about the format itself can still be rendered.
func (f *GlobalFlags) outputFormat() string {
	if IsValidOutputFormat(f.Output) {
		return f.Output
	}
	return OutputText
}

// Execute runs the root command with the provided context and build info.
// SIGINT and SIGTERM cancel the command context; the in-flight Vault
// request is abandoned and no further actions are started. A failing
// command has its error rendered to stderr before it is returned.
func Execute(ctx context.Context, info BuildInfo) error {
	return execute(ctx, info, os.Args[1:], os.Stdout, os.Stderr)
}

// execute is Execute with injectable arguments and writers.
func execute(ctx context.Context, info BuildInfo, args []string, stdout, stderr io.Writer) error {
	sig := signal.NewHandler(ctx)
	defer sig.Stop()

	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(sig.Context())
	if err != nil {
		tui.NewOutput(stderr, flags.outputFormat()).Error(err)
	}
	return err
}
