package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <ua>",
		Short: "Print the canonical family/major.minor.0 form of a runtime identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), c.app.Normalize(args[0]))
			return err
		},
	}
}
