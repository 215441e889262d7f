// Package commands implements the CLI commands of the polyfill service.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/polyfill/internal/adapters/config"
	"go.trai.ch/polyfill/internal/app"
	"go.trai.ch/polyfill/internal/build"
	"go.trai.ch/polyfill/internal/core/domain"
)

// CLI represents the command line interface for polyfill.
type CLI struct {
	app      Application
	settings config.Settings
	serve    ServeFunc
	rootCmd  *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	LoadCatalog(ctx context.Context, dir string) error
	Resolve(ctx context.Context, req domain.Request) (*app.Resolution, error)
	Bundle(ctx context.Context, req domain.Request) (*app.Artifact, error)
	Normalize(raw string) string
	List(ctx context.Context) ([]string, error)
	Describe(ctx context.Context, name string) (*domain.CapabilityMetadata, error)
}

// ServeFunc serves HTTP on addr until ctx is cancelled.
type ServeFunc func(ctx context.Context, addr string) error

// Option configures a CLI.
type Option func(*CLI)

// WithSettings supplies the defaults of the command line flags.
func WithSettings(s *config.Settings) Option {
	return func(c *CLI) {
		if s != nil {
			c.settings = *s
		}
	}
}

// WithServe enables the serve command.
func WithServe(fn ServeFunc) Option {
	return func(c *CLI) { c.serve = fn }
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "polyfill",
		Short:         "Serve the platform shims a runtime needs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:      a,
		settings: config.Defaults(),
		rootCmd:  rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().String("catalog", c.settings.Catalog, "Path to the capability catalog directory")
	rootCmd.PersistentFlags().String("config", "", "Path to the settings file (default $"+config.ConfigFileEnv+" or "+domain.DefaultConfigFile+")")

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newBundleCmd())
	rootCmd.AddCommand(c.newNormalizeCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newDescribeCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// settingsFor layers the explicitly set flags of cmd over the environment,
// the settings file and the settings the CLI was created with.
func (c *CLI) settingsFor(cmd *cobra.Command) (*config.Settings, error) {
	v := config.NewViperWithDefaults(c.settings)
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")
	return config.Load(v, path)
}

func (c *CLI) loadCatalog(cmd *cobra.Command) error {
	settings, err := c.settingsFor(cmd)
	if err != nil {
		return err
	}
	return c.app.LoadCatalog(cmd.Context(), settings.Catalog)
}
