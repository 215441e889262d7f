// Package main is the entry point for the polyfill service.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/polyfill/cmd/polyfill/commands"
	"go.trai.ch/polyfill/internal/adapters/httpapi"
	"go.trai.ch/polyfill/internal/app"
	_ "go.trai.ch/polyfill/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	// 2. Interface - HTTP
	opts := []httpapi.Option{}
	if components.Metrics != nil {
		opts = append(opts, httpapi.WithMetrics(components.Metrics))
	}
	server := httpapi.New(components.App, components.Logger, opts...)

	// 3. Interface - CLI
	cli := commands.New(components.App,
		commands.WithSettings(components.Settings),
		commands.WithServe(server.ListenAndServe),
	)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 4. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
