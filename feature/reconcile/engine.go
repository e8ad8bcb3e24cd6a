package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// currencyTolerance is half a cent: two monetary sums that agree to two
// decimal places are considered equal.
var currencyTolerance = decimal.New(5, -3)

// Engine independently recomputes business metrics from the operational and
// analytical stores over a trailing window and compares them. It holds
// read-only connections and never mutates either side.
type Engine struct {
	src *gorm.DB
	dst *gorm.DB
	cfg Config
	log *zap.Logger
}

// NewEngine creates a reconciliation engine over the two stores.
func NewEngine(src, dst *gorm.DB, cfg Config, log *zap.Logger) *Engine {
	return &Engine{src: src, dst: dst, cfg: cfg, log: log}
}

// Validate runs every check and returns the report. A mismatch is reported,
// never returned as an error: only a store/query failure aborts validation.
func (e *Engine) Validate(ctx context.Context) (*Report, error) {
	now := time.Now().UTC()
	windowStart := now.AddDate(0, 0, -e.cfg.WindowDays)

	report := &Report{
		RunID:       uuid.NewString(),
		WindowStart: windowStart,
		WindowEnd:   now,
		GeneratedAt: now,
	}

	if err := e.checkPaymentCount(ctx, windowStart, report); err != nil {
		return nil, err
	}
	if err := e.checkRentalCount(ctx, windowStart, report); err != nil {
		return nil, err
	}
	if err := e.checkPaymentTotal(ctx, windowStart, report); err != nil {
		return nil, err
	}
	if err := e.checkPaymentTotalPerStore(ctx, windowStart, report); err != nil {
		return nil, err
	}

	for _, c := range report.Checks {
		if !c.Passed {
			report.Failed++
			e.log.Warn("Reconciliation check failed",
				zap.String("check", c.Name),
				zap.String("source", c.Source),
				zap.String("target", c.Target),
			)
		}
	}
	for _, g := range report.Grouped {
		if !g.Passed {
			report.Failed++
			e.log.Warn("Reconciliation check failed", zap.String("check", g.Name))
		}
	}
	report.Passed = report.Failed == 0

	return report, nil
}

func (e *Engine) checkPaymentCount(ctx context.Context, since time.Time, report *Report) error {
	var srcCount, dstCount int64

	err := e.src.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM payment WHERE payment_date >= ?`, since,
	).Scan(&srcCount).Error
	if err != nil {
		return fmt.Errorf("failed to count source payments: %w", err)
	}

	// The target side counts through the date dimension join, so the check
	// also proves fact date keys land on real calendar rows.
	err = e.dst.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM fact_payment f
		 JOIN dim_date d ON f.date_key = d.date_key
		 WHERE f.payment_date >= ?`, since,
	).Scan(&dstCount).Error
	if err != nil {
		return fmt.Errorf("failed to count target payments: %w", err)
	}

	report.Checks = append(report.Checks, Check{
		Name:   "Payment Count",
		Passed: srcCount == dstCount,
		Source: strconv.FormatInt(srcCount, 10),
		Target: strconv.FormatInt(dstCount, 10),
	})
	return nil
}

func (e *Engine) checkRentalCount(ctx context.Context, since time.Time, report *Report) error {
	var srcCount, dstCount int64

	err := e.src.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM rental WHERE rental_date >= ?`, since,
	).Scan(&srcCount).Error
	if err != nil {
		return fmt.Errorf("failed to count source rentals: %w", err)
	}

	err = e.dst.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM fact_rental WHERE rental_date >= ?`, since,
	).Scan(&dstCount).Error
	if err != nil {
		return fmt.Errorf("failed to count target rentals: %w", err)
	}

	report.Checks = append(report.Checks, Check{
		Name:   "Rental Count",
		Passed: srcCount == dstCount,
		Source: strconv.FormatInt(srcCount, 10),
		Target: strconv.FormatInt(dstCount, 10),
	})
	return nil
}

func (e *Engine) checkPaymentTotal(ctx context.Context, since time.Time, report *Report) error {
	srcTotal, err := e.sumAmount(ctx, e.src,
		`SELECT COALESCE(SUM(amount), 0) AS total FROM payment WHERE payment_date >= ?`, since)
	if err != nil {
		return fmt.Errorf("failed to sum source payments: %w", err)
	}

	dstTotal, err := e.sumAmount(ctx, e.dst,
		`SELECT COALESCE(SUM(amount), 0) AS total FROM fact_payment WHERE payment_date >= ?`, since)
	if err != nil {
		return fmt.Errorf("failed to sum target payments: %w", err)
	}

	report.Checks = append(report.Checks, Check{
		Name:   "Payment Total",
		Passed: amountsEqual(srcTotal, dstTotal),
		Source: "$" + srcTotal.StringFixed(2),
		Target: "$" + dstTotal.StringFixed(2),
	})
	return nil
}

func (e *Engine) checkPaymentTotalPerStore(ctx context.Context, since time.Time, report *Report) error {
	srcRows, err := e.sumAmountByGroup(ctx, e.src,
		`SELECT i.store_id AS grp, COALESCE(SUM(p.amount), 0) AS total
		 FROM payment p
		 JOIN rental r ON p.rental_id = r.rental_id
		 JOIN inventory i ON r.inventory_id = i.inventory_id
		 WHERE p.payment_date >= ?
		 GROUP BY i.store_id`, since)
	if err != nil {
		return fmt.Errorf("failed to sum source payments per store: %w", err)
	}

	dstRows, err := e.sumAmountByGroup(ctx, e.dst,
		`SELECT s.store_id AS grp, COALESCE(SUM(f.amount), 0) AS total
		 FROM fact_payment f
		 JOIN dim_store s ON f.store_key = s.store_key
		 WHERE f.payment_date >= ?
		 GROUP BY s.store_id`, since)
	if err != nil {
		return fmt.Errorf("failed to sum target payments per store: %w", err)
	}

	// Union of groups from both sides: a store present on only one side is a
	// discrepancy, not an omission from the table.
	seen := make(map[int]bool)
	var groups []int
	for g := range srcRows {
		seen[g] = true
		groups = append(groups, g)
	}
	for g := range dstRows {
		if !seen[g] {
			groups = append(groups, g)
		}
	}
	sort.Ints(groups)

	check := GroupedCheck{Name: "Payment Total per Store", Passed: true}
	for _, group := range groups {
		row := GroupRow{
			Group:  fmt.Sprintf("store %d", group),
			Source: srcRows[group],
			Target: dstRows[group],
		}
		row.Passed = amountsEqual(row.Source, row.Target)
		if !row.Passed {
			check.Passed = false
		}
		check.Rows = append(check.Rows, row)
	}

	report.Grouped = append(report.Grouped, check)
	return nil
}

func (e *Engine) sumAmount(ctx context.Context, db *gorm.DB, query string, since time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := db.WithContext(ctx).Raw(query, since).Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total.Round(2), nil
}

func (e *Engine) sumAmountByGroup(ctx context.Context, db *gorm.DB, query string, since time.Time) (map[int]decimal.Decimal, error) {
	var rows []struct {
		Grp   int             `gorm:"column:grp"`
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := db.WithContext(ctx).Raw(query, since).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[int]decimal.Decimal, len(rows))
	for _, r := range rows {
		out[r.Grp] = r.Total.Round(2)
	}
	return out, nil
}

// amountsEqual compares two monetary sums at currency precision. Rounding
// happens at this boundary, once, instead of relying on whatever numeric
// types the two stores returned.
func amountsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(currencyTolerance)
}
