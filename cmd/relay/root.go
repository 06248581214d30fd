package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/logging"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "tally-relay",
		Short: "Deliver queued tally events",
		Long: `Polls the event outbox and hands pending events to the sink until interrupted.
Prometheus metrics are served on relay.metrics_addr.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/tally/config.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "requeue",
		Short: "Move parked events back to pending",
		Long: `Events that exhausted their delivery attempts are parked as failed.
requeue resets their attempt count so the next relay poll retries them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := requeue(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Requeued %d parked event(s)\n", n)
			return nil
		},
	})

	return cmd
}

// open loads the config, routes logs to stderr and opens the database
func open(ctx context.Context, configPath string) (*app.App, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logging.SetOutput(os.Stderr, level)

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return application, cfg, nil
}

func requeue(ctx context.Context, configPath string) (int, error) {
	application, cfg, err := open(ctx, configPath)
	if err != nil {
		return 0, err
	}
	defer application.Close()

	return application.NewRelay(cfg.Relay, events.NewLogSink(slog.Default()), nil).Requeue(ctx)
}

func run(ctx context.Context, configPath string) error {
	application, cfg, err := open(ctx, configPath)
	if err != nil {
		return err
	}
	defer application.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	relay := application.NewRelay(cfg.Relay, events.NewLogSink(slog.Default()), reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	server := &http.Server{
		Addr:              cfg.Relay.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("tally relay starting", "metrics_addr", cfg.Relay.MetricsAddr, "pid", os.Getpid())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return relay.Run(ctx)
	})

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("tally relay shutting down gracefully")
	return nil
}
