package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Print the assembled bundle for a runtime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := requestFromFlags(cmd)
			if err != nil {
				return err
			}
			req.Minify, _ = cmd.Flags().GetBool("minify")
			if err := c.loadCatalog(cmd); err != nil {
				return err
			}

			art, err := c.app.Bundle(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), art.Source)
			return err
		},
	}
	addRequestFlags(cmd)
	cmd.Flags().BoolP("minify", "m", false, "Use minified sources and omit the explanatory header")
	return cmd
}
