package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vet-clinic-api/internal/config"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := a.migrateUp(ctx); err != nil {
			return err
		}

		opts, err := a.routerOptions()
		if err != nil {
			return err
		}

		// Nivel de log en caliente si hay archivo de config.
		a.loader.Watch(func(c *config.Config) {
			a.levelVar.Set(logger.ParseLevel(c.Log.Level).Slog())
			a.log.Info("log level reloaded", map[string]any{"level": c.Log.Level})
		}, func(err error) {
			a.log.Warn("config reload rejected", map[string]any{"error": err})
		})

		srv := &http.Server{
			Addr:         a.cfg.Server.Addr(),
			Handler:      router.NewRouter(opts),
			ReadTimeout:  a.cfg.Server.ReadTimeout,
			WriteTimeout: a.cfg.Server.WriteTimeout,
		}

		storage := "memory"
		if a.db != nil {
			storage = "postgres"
		}
		a.log.Info("starting server", map[string]any{"addr": srv.Addr, "storage": storage})

		errCh := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.log.Info("shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
