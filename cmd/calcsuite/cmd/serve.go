package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/calcsuite/internal/cache"
	"github.com/iwvelando/calcsuite/internal/calculator"
	"github.com/iwvelando/calcsuite/internal/logging"
	"github.com/iwvelando/calcsuite/internal/server"
	"github.com/iwvelando/calcsuite/internal/telemetry"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) serveCommand() *cobra.Command {
	var serverConfig, address, maxBodySize string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve every calculator as a JSON HTTP API",
		Example: `  calcsuite serve
  calcsuite serve --server-config server-config.yaml --address :9090
  calcsuite serve --max-body-size 64K`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(serverConfig)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			if maxBodySize != "" {
				size, err := server.ParseSize(maxBodySize)
				if err != nil {
					return err
				}
				if size <= 0 {
					return fmt.Errorf("invalid --max-body-size %q: must be positive", maxBodySize)
				}
				cfg.SetBodySizeBytes(size)
			}

			logger := a.logger
			if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
				logger, err = logging.New(cfg.Logging, a.logLevel)
				if err != nil {
					return fmt.Errorf("failed to initialize server logger: %w", err)
				}
				defer func() {
					_ = logger.Sync()
				}()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			results, err := cache.New(ctx, a.conf.Cache, logger)
			if err != nil {
				return err
			}
			defer func() {
				_ = results.Close()
			}()

			shutdownTracing, err := telemetry.InitTracing(ctx, a.conf.Tracing, Version, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdownTracing(context.Background()); err != nil {
					logger.Warn("failed to flush traces",
						zap.String("op", "cmd.serve"),
						zap.Error(err),
					)
				}
			}()

			svc := calculator.New(
				calculator.WithLimits(a.conf.Limits),
				calculator.WithCache(results),
				calculator.WithLogger(logger),
				calculator.WithClock(a.now),
			)
			handler := server.NewHandler(svc, logger, cfg.BodySizeBytes(), Version)
			return server.ListenAndRun(ctx, cfg, handler, logger)
		},
	}
	c.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	c.Flags().StringVar(&address, "address", "", "listen address override, e.g. :9090")
	c.Flags().StringVar(&maxBodySize, "max-body-size", "", "request body limit override, e.g. 64K or 1MB")
	return c
}
