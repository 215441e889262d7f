package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/polyfill/internal/adapters/catalog"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every capability in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.loadCatalog(cmd); err != nil {
				return err
			}
			names, err := c.app.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (c *CLI) newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <capability>",
		Short: "Print the catalog metadata of a capability as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadCatalog(cmd); err != nil {
				return err
			}
			meta, err := c.app.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(catalog.ManifestOf(meta)); err != nil {
				return zerr.Wrap(err, "failed to encode capability")
			}
			return enc.Close()
		},
	}
}
