package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledger-backend/internal/ledger"
	"ledger-backend/internal/logger"
	"ledger-backend/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the schema and run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("serve")

		if err := cfg.Validate(); err != nil {
			return err
		}
		db, err := openDB(true)
		if err != nil {
			return err
		}

		app := server.New(cfg, ledger.NewService(db))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
			errCh <- app.Listen(":" + cfg.HTTPPort)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
