package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/deposit-calculator-go/internal/cache"
	"github.com/cloud-ru/deposit-calculator-go/internal/config"
	"github.com/cloud-ru/deposit-calculator-go/internal/logging"
	"github.com/cloud-ru/deposit-calculator-go/internal/server"
	"github.com/cloud-ru/deposit-calculator-go/internal/tools"
	"github.com/cloud-ru/deposit-calculator-go/internal/tracing"
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the calculator HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8000, "listen port (overrides PORT)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := logging.New(cfg.LogLevel)

	shutdownTracing, err := tracing.InitTracing(cfg.OTELServiceName, cfg.OTELEndpoint, log)
	if err != nil {
		return fmt.Errorf("initialising tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.WithError(err).Warn("tracing shutdown failed")
		}
	}()

	resultCache := cache.New(cfg.RedisAddr, cfg.CacheSize, cfg.CacheTTL, log)
	if rc, ok := resultCache.(*cache.RedisCache); ok {
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unavailable, results will not be cached")
		}
	}

	deps, err := buildDeps(cfg, log, resultCache)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(tools.Registry(deps), log)
	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port))
}
