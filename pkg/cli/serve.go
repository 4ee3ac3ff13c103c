package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"

	"github.com/koren-henrik/dxrelay/pkg/cli/config"
	controller "github.com/koren-henrik/dxrelay/pkg/controller/http"
	"github.com/koren-henrik/dxrelay/pkg/domain/interfaces"
	"github.com/koren-henrik/dxrelay/pkg/infra/configstore"
	"github.com/koren-henrik/dxrelay/pkg/infra/metrics"
	"github.com/koren-henrik/dxrelay/pkg/usecase"
	"github.com/koren-henrik/dxrelay/pkg/utils/errutil"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		pipelineCfg pipelineConfig
	)

	flags := append(serverCfg.Flags(), pipelineCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server receiving run notifications",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting dxrelay server",
				slog.String("addr", serverCfg.Addr),
				slog.String("config", pipelineCfg.dx.Location),
			)

			// Metrics
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			recorder := metrics.NewRecorder(reg)

			// Create use cases
			src, pipelineRunUC, closeSrc, err := pipelineCfg.build(ctx, usecase.WithOutcomeRecorder(recorder))
			defer func() {
				if err := closeSrc(); err != nil {
					logger.Warn("Failed to close config source", "error", err)
				}
			}()
			if err != nil {
				return err
			}
			logFindings(ctx, src)

			opts := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
				controller.WithSigningSecret(serverCfg.SigningSecret),
				controller.WithNotificationRecorder(recorder),
			}
			if serverCfg.Metrics {
				opts = append(opts, controller.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
			}

			// Create HTTP server with options
			server, err := controller.NewServer(ctx, pipelineRunUC, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			serveErr := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					serveErr <- err
				}
			}()

			// Wait for interrupt signal, reloading config on SIGHUP
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer signal.Stop(sigChan)

		wait:
			for {
				select {
				case <-ctx.Done():
					logger.Info("Context cancelled, shutting down...")
					break wait
				case err := <-serveErr:
					errutil.Handle(ctx, err, "HTTP server error")
					return goerr.Wrap(err, "HTTP server stopped", goerr.V("addr", serverCfg.Addr))
				case sig := <-sigChan:
					if sig == syscall.SIGHUP {
						reloadConfig(ctx, src)
						continue
					}
					logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
					break wait
				}
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// reloadConfig re-reads file backed config sources. A failed reload keeps
// the previous snapshot.
func reloadConfig(ctx context.Context, src interfaces.ConfigSource) {
	logger := ctxlog.From(ctx)

	reloader, ok := src.(configstore.Reloader)
	if !ok {
		logger.Info("Config source does not support reload, ignoring SIGHUP")
		return
	}

	if err := reloader.Reload(ctx); err != nil {
		errutil.Handle(ctx, err, "Failed to reload filter config")
		return
	}

	logger.Info("Filter config reloaded")
	logFindings(ctx, src)
}
