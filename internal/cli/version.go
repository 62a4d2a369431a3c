package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/vaultsign/internal/tui"
)

// AddVersionCommand adds the version command to the root command.
func AddVersionCommand(root *cobra.Command, flags *GlobalFlags, info BuildInfo) {
	root.AddCommand(newVersionCmd(flags, info))
}

// newVersionCmd creates the version command. It needs no Vault connection.
func newVersionCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.Output == OutputJSON {
				return tui.NewOutput(cmd.OutOrStdout(), OutputJSON).JSON(info.withDefaults())
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "vaultsign %s\n", formatVersion(info))
			return err
		},
	}
}
