package cmd

import (
	"fmt"
	"os"

	"warehouse-sync/core/config"
	"warehouse-sync/core/database"
	"warehouse-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "warehouse-sync",
	Short: "DVD-rental warehouse synchronizer",
	Long: `warehouse-sync loads the operational DVD-rental store into an
analytical star schema and keeps the two in agreement.

Commands: init provisions the star schema, full-load populates it once,
incremental syncs changes since the last run, validate reconciles business
metrics between the two stores.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger every command starts from.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, l, nil
}

// connectStores opens both store connections. Either store being unreachable
// aborts the command before any writes.
func connectStores(cfg *config.Config) (src, dst *gorm.DB, err error) {
	src, err = database.Connect(cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("source store unreachable: %w", err)
	}
	dst, err = database.Connect(cfg.Warehouse)
	if err != nil {
		return nil, nil, fmt.Errorf("warehouse store unreachable: %w", err)
	}
	return src, dst, nil
}
