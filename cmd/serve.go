package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/fxbilibili/internal/config"
	"github.com/JakeFAU/fxbilibili/internal/logging"
)

// newServeCmd creates the 'serve' subcommand.
func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *options) error {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development, cfg.Telemetry.ServiceName)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appInstance, err := newApp(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application services: %w", err)
	}
	defer appInstance.Close(context.Background())

	if err := appInstance.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", zap.Error(err))
		return err
	}
	return nil
}
