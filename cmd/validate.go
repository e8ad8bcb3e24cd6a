package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"warehouse-sync/core/storage"
	"warehouse-sync/feature/reconcile"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var archiveReport bool

// validateCmd reconciles business metrics between the two stores.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Reconcile metrics between the operational store and the warehouse",
	Long: `Recomputes transaction counts and monetary totals independently on
both stores over the trailing window and compares them. Read-only on both
sides; a mismatch is reported, not repaired.

Examples:
  # Report to the console
  warehouse-sync validate

  # Also archive the JSON report to object storage
  warehouse-sync validate --archive`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&archiveReport, "archive", false, "Upload the JSON report to object storage")
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}

	src, dst, err := connectStores(cfg)
	if err != nil {
		return err
	}

	engine := reconcile.NewEngine(src, dst, cfg.Reconcile, l)
	report, err := engine.Validate(ctx)
	if err != nil {
		return err
	}

	printReport(l, report)

	if archiveReport {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := archive(ctx, client, cfg.Storage.Bucket, report); err != nil {
			return err
		}
		l.Info("Report archived", zap.String("bucket", cfg.Storage.Bucket))
	}

	if !report.Passed {
		return fmt.Errorf("reconciliation found %d failed check(s)", report.Failed)
	}
	return nil
}

// printReport logs every check's outcome plus the full per-group tables, so
// a discrepancy is diagnosable without re-querying either store manually.
func printReport(l *zap.Logger, report *reconcile.Report) {
	l.Info("Reconciliation report",
		zap.String("run_id", report.RunID),
		zap.Time("window_start", report.WindowStart),
		zap.Time("window_end", report.WindowEnd),
	)

	for _, c := range report.Checks {
		l.Info("Check "+verdict(c.Passed),
			zap.String("check", c.Name),
			zap.String("source", c.Source),
			zap.String("target", c.Target),
		)
	}

	for _, g := range report.Grouped {
		l.Info("Check "+verdict(g.Passed), zap.String("check", g.Name))
		for _, row := range g.Rows {
			l.Info("  "+row.Group,
				zap.String("source", "$"+row.Source.StringFixed(2)),
				zap.String("target", "$"+row.Target.StringFixed(2)),
				zap.Bool("passed", row.Passed),
			)
		}
	}

	if report.Passed {
		l.Info("All reconciliation checks passed")
	} else {
		l.Warn("Reconciliation failed", zap.Int("failed_checks", report.Failed))
	}
}

func verdict(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}

// archive uploads the JSON report, creating the bucket on first use.
func archive(ctx context.Context, client storage.Client, bucket string, report *reconcile.Report) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	objectName := fmt.Sprintf("reports/validate-%s-%s.json",
		report.GeneratedAt.Format("2006-01-02"), report.RunID)

	_, err = client.PutObject(ctx, bucket, objectName,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}
	return nil
}
