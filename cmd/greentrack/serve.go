package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/greentrack/internal/api/http"
	"github.com/i474232898/greentrack/internal/scheduler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the generation refresh job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := wire()
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()

			// Scheduler that periodically refreshes simulated generation.
			sched := scheduler.New(c.generation, c.cfg.GenerationInterval, c.cfg.Location(), c.logger)
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()

			app := httpapi.NewApp(httpapi.AppOptions{
				Name:           "greentrack",
				AccessLog:      true,
				MetricsHandler: c.metrics.Handler(),
			}, httpapi.Dependencies{
				Enricher:   c.orchestrator,
				Sessions:   c.sessions,
				Advisor:    c.chat,
				Generation: c.generation,
			})

			go func() {
				c.logger.Info("http server listening", zap.String("port", c.cfg.Port))
				if err := app.Listen(":" + c.cfg.Port); err != nil {
					c.logger.Error("fiber server stopped", zap.Error(err))
				}
			}()

			// Wait for termination signal
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				c.logger.Warn("error during shutdown", zap.Error(err))
			}
			return nil
		},
	}
}
