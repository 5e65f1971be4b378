package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/incubator/internal/api"
	"github.com/alexanderramin/incubator/internal/repository"
	"github.com/alexanderramin/incubator/internal/session"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var port int
	var host string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with the session sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			return runServer(ctx, app, ln)
		},
	}

	defaultPort := 8080
	if app.Config != nil {
		defaultPort = app.Config.Port
	}
	cmd.Flags().IntVar(&port, "port", defaultPort, "port to listen on")
	cmd.Flags().StringVar(&host, "host", "", "interface to bind (all when empty)")

	return cmd
}

// runServer serves the API on ln until ctx is cancelled, then drains
// in-flight requests. Background sweeping stops with the server.
func runServer(ctx context.Context, app *App, ln net.Listener) error {
	logger := app.logger()

	var apiKey string
	ttl, interval := session.DefaultTTL, session.DefaultSweepInterval
	var retention time.Duration
	if app.Config != nil {
		apiKey = app.Config.APIKey
		ttl, interval = app.Config.SessionTTL, app.Config.SweepInterval
		retention = app.Config.CallRetention
	}

	router := api.NewRouter(api.Deps{
		Coach:    app.Coach,
		Calls:    app.Calls,
		Model:    app.Model,
		Sessions: app.Sessions,
		APIKey:   apiKey,
		Logger:   logger,
	})

	srv := &http.Server{
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	bgCtx, cancelBG := context.WithCancel(ctx)
	defer cancelBG()

	go session.NewSweeper(app.Sessions, ttl, interval, logger).Run(bgCtx)
	if app.Calls != nil && retention > 0 {
		go pruneCalls(bgCtx, app.Calls, retention, interval, logger)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("incubator server starting", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// pruneCalls drops telemetry older than retention, once at startup and then
// on every interval.
func pruneCalls(ctx context.Context, calls repository.CallLogRepo, retention, interval time.Duration, logger *slog.Logger) {
	prune := func() {
		n, err := calls.Prune(ctx, time.Now().Add(-retention))
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("pruning model calls failed", "error", err)
			}
			return
		}
		if n > 0 {
			logger.Info("old model calls pruned", "removed", n, "retention", retention.String())
		}
	}

	prune()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}
