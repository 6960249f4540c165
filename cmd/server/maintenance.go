package main

import (
	"fmt"

	"ledger-backend/internal/ledger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := openDB(true); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
		return nil
	},
}

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Check or repair product stock against line items",
}

var stockVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "List products whose stock disagrees with their line items",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(false)
		if err != nil {
			return err
		}
		mismatches, err := ledger.NewService(db).VerifyStock(cmd.Context())
		if err != nil {
			return err
		}
		printMismatches(cmd, mismatches)
		if len(mismatches) > 0 {
			return fmt.Errorf("%d products out of balance", len(mismatches))
		}
		return nil
	},
}

var stockRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Reset every product's stock to opening stock plus purchases minus sales",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(false)
		if err != nil {
			return err
		}
		fixed, err := ledger.NewService(db).RebuildStock(cmd.Context())
		if err != nil {
			return err
		}
		printMismatches(cmd, fixed)
		fmt.Fprintf(cmd.OutOrStdout(), "%d products corrected\n", len(fixed))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Payment status maintenance",
}

var statusRecomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Re-derive the payment status of every order",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(false)
		if err != nil {
			return err
		}
		changed, err := ledger.NewService(db).RecomputeStatuses(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d orders changed status\n", changed)
		return nil
	},
}

func printMismatches(cmd *cobra.Command, mismatches []ledger.StockMismatch) {
	for _, m := range mismatches {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d %-30s stored=%d expected=%d\n", m.ProductID, m.Name, m.Stored, m.Expected)
	}
}

func init() {
	stockCmd.AddCommand(stockVerifyCmd, stockRebuildCmd)
	statusCmd.AddCommand(statusRecomputeCmd)
	rootCmd.AddCommand(migrateCmd, stockCmd, statusCmd)
}
