package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"warehouse-sync/feature/reconcile"
	"warehouse-sync/feature/warehouse/models"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd exposes sync state and on-demand validation over HTTP, so
// operators can poll the warehouse without shell access.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve sync status and validation over HTTP",
	Long: `Starts a small HTTP server:

  GET /health         liveness
  GET /api/watermarks per-table watermarks
  GET /api/validate   run reconciliation, return the JSON report`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	src, dst, err := connectStores(cfg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})

	app.Use(func(c *fiber.Ctx) error {
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/api/watermarks", func(c *fiber.Ctx) error {
		var rows []models.SyncWatermark
		if err := dst.WithContext(c.Context()).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(rows)
	})

	app.Get("/api/validate", func(c *fiber.Ctx) error {
		engine := reconcile.NewEngine(src, dst, cfg.Reconcile, l)
		report, err := engine.Validate(context.Background())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(report)
	})

	go func() {
		l.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	l.Info("Shutting down server...")
	return app.Shutdown()
}
