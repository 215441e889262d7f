package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the capabilities a runtime needs as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := requestFromFlags(cmd)
			if err != nil {
				return err
			}
			if err := c.loadCatalog(cmd); err != nil {
				return err
			}

			res, err := c.app.Resolve(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res.Capabilities); err != nil {
				return zerr.Wrap(err, "failed to encode resolution")
			}
			return nil
		},
	}
	addRequestFlags(cmd)
	return cmd
}
