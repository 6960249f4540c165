package main

import (
	"fmt"
	"os"

	"ledger-backend/internal/config"
	"ledger-backend/internal/database"
	"ledger-backend/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg      *config.Config
	dsnFlag  string
	portFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inventory, sales and purchasing ledger",
	Long: `Ledger tracks products and stock, purchases from suppliers, sales to
customers and the payments against them, with debts kept per currency.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if dsnFlag != "" {
			cfg.DatabaseDSN = dsnFlag
		}
		if portFlag != "" {
			cfg.HTTPPort = portFlag
		}
		return logger.Setup(cfg.LogLevel, cfg.LogFormat)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "database DSN (overrides DATABASE_DSN)")
	serveCmd.Flags().StringVar(&portFlag, "port", "", "HTTP port (overrides HTTP_PORT)")
}

// openDB opens the database and, when migrate is set, brings the schema up to date.
func openDB(migrate bool) (*gorm.DB, error) {
	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if migrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}
