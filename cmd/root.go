// Package cmd defines and implements the CLI commands for the fxbilibili executable.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/fxbilibili/internal/app"
	"github.com/JakeFAU/fxbilibili/internal/config"
)

// version is overridden at build time with -ldflags "-X github.com/JakeFAU/fxbilibili/cmd.version=...".
var version = "dev"

type options struct {
	configFile string
	envFile    string
}

// Runner is the part of the application the commands drive.
// It is an interface so tests can substitute the server.
type Runner interface {
	Run(ctx context.Context) error
	Close(ctx context.Context)
}

// newApp is the application factory. It's a variable so tests can replace it.
var newApp = func(ctx context.Context, cfg config.Config, logger *zap.Logger) (Runner, error) {
	return app.NewApp(ctx, cfg, version, logger)
}

// newRootCmd creates and configures the root command. Running it without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "fxbilibili",
		Short: "Serves embeddable previews of Bilibili videos.",
		Long: `fxbilibili turns Bilibili video links into Open Graph previews for chat
and social platforms, and redirects human visitors to the original page.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (yaml, optional)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.String(config.FlagHTTPHost, "", "address to listen on (overrides HTTP_HOST)")
	flags.Int(config.FlagHTTPPort, 0, "port to listen on (overrides HTTP_PORT)")

	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fxbilibili:", err)
		os.Exit(1)
	}
}
