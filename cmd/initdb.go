package cmd

import (
	"fmt"

	"warehouse-sync/core/database"
	"warehouse-sync/feature/warehouse"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// initCmd provisions the analytical star schema.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision the analytical star schema",
	Long: `Creates the warehouse's dimension, bridge, fact and watermark tables.
Idempotent: existing tables are left untouched.`,
	RunE: runInit,
}

func init() {
	RootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}

	// init only touches the warehouse; the source is not needed yet.
	dst, err := database.Connect(cfg.Warehouse)
	if err != nil {
		return fmt.Errorf("warehouse store unreachable: %w", err)
	}

	if err := warehouse.Provision(dst); err != nil {
		return err
	}

	l.Info("Warehouse schema provisioned", zap.Int("tables", len(warehouse.Tables())))
	return nil
}
