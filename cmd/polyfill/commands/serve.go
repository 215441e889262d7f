package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve bundles over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.serve == nil {
				return zerr.New("serving is not available")
			}
			settings, err := c.settingsFor(cmd)
			if err != nil {
				return err
			}

			// Requests are answered with 503 until the catalog is loaded.
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return c.serve(ctx, settings.Listen)
			})
			g.Go(func() error {
				return c.app.LoadCatalog(ctx, settings.Catalog)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringP("listen", "l", c.settings.Listen, "Address to listen on")
	return cmd
}
