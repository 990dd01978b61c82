package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/navbind"
	"github.com/aretw0/navbind/internal/presentation/tui"
	httpAdapter "github.com/aretw0/navbind/pkg/adapters/http"
	"github.com/aretw0/navbind/pkg/domain"
	"github.com/aretw0/navbind/pkg/navigation"
	"github.com/aretw0/navbind/pkg/observability"
	"github.com/aretw0/navbind/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the bound page over HTTP",
	Long: `Binds the page and serves it. Activating a bound trigger redirects the
browser (303 See Other) to its target. Also exposes /bindings, /events (SSE),
/health, /info and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetString("port")
		quiet, _ := cmd.Flags().GetBool("quiet")

		p, err := loadProject(flagsFrom(cmd))
		if err != nil {
			return err
		}

		handler, binder, err := buildHTTPHandler(cmd.Context(), p, logger)
		if err != nil {
			return err
		}

		if !quiet && tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout())
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting navbind server", "address", srv.Addr, "bindings", len(binder.Bindings()), "policy", binder.Policy())
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("Error killing server", "error", err)
				}
			}
			logger.Info("navbind server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}

// buildHTTPHandler binds the project's page and wraps it in the HTTP host.
// Missing triggers are logged; under fail-fast they abort startup.
func buildHTTPHandler(ctx context.Context, p *project, logger *slog.Logger) (http.Handler, *navbind.Binder, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)
	streams := httpAdapter.NewStreamManager()

	binder := navbind.New(navigation.NewNavigator(unscopedNavigator(logger)), p.binderOptions(
		navbind.WithLogger(logger),
		navbind.WithLifecycleHooks(observability.Compose(
			metrics.Hooks(),
			streams.Hooks(),
			observability.LoggingHooks(logger),
		)),
	)...)

	if err := bindPage(ctx, binder, p); err != nil {
		return nil, nil, err
	}

	handler := httpAdapter.NewHandler(p.page, binder,
		httpAdapter.WithStreams(streams),
		httpAdapter.WithMetrics(reg),
		httpAdapter.WithLogger(logger),
	)
	return handler, binder, nil
}

// bindPage initializes binder on the project's page. Missing triggers are
// tolerated under best-effort.
func bindPage(ctx context.Context, binder *navbind.Binder, p *project) error {
	err := binder.Initialize(ctx, p.page)
	if err == nil {
		return nil
	}
	missing := domain.MissingTriggers(err)
	if len(missing) > 0 && p.policy == domain.PolicyBestEffort {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidBinding) {
		return fmt.Errorf("invalid bindings: %w", err)
	}
	return fmt.Errorf("failed to bind page: %w", err)
}

// unscopedNavigator handles navigations requested outside a host request,
// which no host can act on.
func unscopedNavigator(logger *slog.Logger) ports.Navigator {
	return ports.NavigatorFunc(func(ctx context.Context, target string) {
		logger.Warn("navigation outside a request dropped", "target", target)
	})
}
