package cli

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/vaultsign/internal/action"
	"github.com/mrz1836/vaultsign/internal/config"
	"github.com/mrz1836/vaultsign/internal/tui"
)

// demoSource names the built-in action list in run output.
const demoSource = "demo"

// runOptions contains the flags of the run command.
type runOptions struct {
	file          string
	key           string
	onError       string
	actionTimeout time.Duration
}

// AddRunCommand adds the run command to the root command.
func AddRunCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newRunCmd(flags))
}

// newRunCmd creates the run command.
func newRunCmd(flags *GlobalFlags) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a list of sign and verify actions in order",
		Long: `Process a list of sign and verify actions strictly in order, one Vault
round trip per action. Each result is printed as soon as it is produced.

Without --file (or run.actions_file) the built-in demo runs: sign
"Hello, Vault!", sign "This is another test message.", then verify
"Hello, Vault!" against an all-zero 64-byte signature, which is reported
invalid.

With --on-error abort (the default) the run stops at the first failed round
trip. With --on-error continue every action is attempted and all failures
are reported together.

Action file format:
  actions:
    - action: sign
      message: "Hello, Vault!"
    - action: verify
      message: "Hello, Vault!"
      signature_ref: 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd.Context(), cmd, cmd.OutOrStdout(), flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML action file (overrides run.actions_file)")
	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "transit key name (overrides signing.key_name)")
	cmd.Flags().StringVar(&opts.onError, "on-error", "", "failure policy (abort|continue)")
	cmd.Flags().DurationVar(&opts.actionTimeout, "action-timeout", 0, "deadline for each round trip (e.g. 10s)")

	return cmd
}

// runRun loads the action list and processes it against Vault.
func runRun(ctx context.Context, _ *cobra.Command, w io.Writer, flags *GlobalFlags, opts runOptions) error {
	cfg, err := loadConfig(ctx, flags, &config.Config{
		Signing: config.SigningConfig{KeyName: opts.key},
		Run: config.RunConfig{
			OnError:       opts.onError,
			ActionTimeout: opts.actionTimeout,
			ActionsFile:   opts.file,
		},
	})
	if err != nil {
		return err
	}
	key, err := requireKey(cfg)
	if err != nil {
		return err
	}

	actions, source, err := loadActions(cfg.Run.ActionsFile)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	session, err := openSession(ctx, cfg, flags.Output)
	if err != nil {
		return err
	}

	out := tui.NewOutput(w, flags.Output)
	procOpts := []action.Option{
		action.WithOnError(action.OnError(cfg.Run.OnError)),
		action.WithActionTimeout(cfg.Run.ActionTimeout),
	}
	// JSON output carries every result in the closing run document.
	if flags.Output == OutputText {
		procOpts = append(procOpts, action.WithReporter(func(r action.Result) {
			out.Result(tui.NewResultView(r))
		}))
	}

	logger.Info().
		Str("key", key).
		Str("source", source).
		Int("actions", len(actions)).
		Str("on_error", cfg.Run.OnError).
		Msg("run started")

	start := time.Now()
	results, err := action.NewProcessor(session, key, procOpts...).Process(ctx, actions)
	view := tui.NewRunView(runID, key, source, len(actions), results, time.Since(start))
	out.Run(view)

	logger.Info().
		Int("succeeded", view.Succeeded).
		Int("failed", view.Failed).
		Int("skipped", view.Skipped).
		Dur("duration", time.Since(start)).
		Msg("run finished")

	return err
}

// loadActions returns the actions of path, or the demo actions when path is empty.
func loadActions(path string) ([]action.Action, string, error) {
	if path == "" {
		return action.DemoActions(), demoSource, nil
	}
	actions, err := action.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return actions, path, nil
}
