package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/vaultsign/internal/tui"
)

// AddStatusCommand adds the status command to the root command.
func AddStatusCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newStatusCmd(flags))
}

// newStatusCmd creates the status command.
func newStatusCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the Vault connection and token",
		Long: `Run the authentication check against Vault and report the server health
together with the token's display name, policies and TTL. No key is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), cmd, cmd.OutOrStdout(), flags)
		},
	}
}

// runStatus connects to Vault and prints the status report.
func runStatus(ctx context.Context, _ *cobra.Command, w io.Writer, flags *GlobalFlags) error {
	cfg, err := loadConfig(ctx, flags, nil)
	if err != nil {
		return err
	}

	session, err := openSession(ctx, cfg, flags.Output)
	if err != nil {
		return err
	}

	health, err := session.Health(ctx)
	if err != nil {
		return err
	}

	token := session.Token()
	view := tui.StatusView{
		Address:       session.Address(),
		Namespace:     session.Namespace(),
		Mount:         session.Mount(),
		Authenticated: session.Authenticated(),
		TokenName:     token.DisplayName,
		Policies:      token.Policies,
		Initialized:   health.Initialized,
		Sealed:        health.Sealed,
		Standby:       health.Standby,
		Version:       health.Version,
		ClusterName:   health.ClusterName,
	}
	if token.TTL > 0 {
		view.TokenTTL = token.TTL.String()
	}

	tui.NewOutput(w, flags.Output).Status(view)
	return nil
}
