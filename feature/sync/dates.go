package sync

import (
	"context"
	"fmt"
	"time"

	"warehouse-sync/feature/calendar"
	"warehouse-sync/feature/source"
	"warehouse-sync/feature/warehouse/models"

	"gorm.io/gorm"
)

// syncDates maintains the date dimension. Its natural key is the calendar
// date carried by transaction timestamps, not a source table of its own, so
// the pass collects the distinct dates from rentals and payments changed
// since the date dimension's watermark and derives a row for each date not
// yet present.
//
// The seen set is seeded from the target's existing keys and extended as new
// keys are derived, so two transactions sharing a date within one pass cannot
// produce a duplicate-key failure.
func syncDates(ctx context.Context, reader *source.Reader, tx *gorm.DB, since time.Time) (*EntityResult, error) {
	res := &EntityResult{Table: "dim_date"}

	dates, err := reader.TransactionDates(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to collect transaction dates: %w", err)
	}

	var existing []int
	if err := tx.Model(&models.DimDate{}).Pluck("date_key", &existing).Error; err != nil {
		return nil, fmt.Errorf("failed to read existing date keys: %w", err)
	}

	seen := make(map[int]bool, len(existing)+len(dates))
	for _, key := range existing {
		seen[key] = true
	}

	var rows []models.DimDate
	for _, d := range dates {
		attrs := calendar.Derive(d)
		if seen[attrs.DateKey] {
			continue
		}
		seen[attrs.DateKey] = true
		rows = append(rows, models.DimDate{
			DateKey:   attrs.DateKey,
			Date:      attrs.Date,
			Year:      attrs.Year,
			Quarter:   attrs.Quarter,
			Month:     attrs.Month,
			Day:       attrs.Day,
			DayOfWeek: attrs.DayOfWeek,
			IsWeekend: attrs.IsWeekend,
		})
	}

	if len(rows) > 0 {
		if err := tx.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
			return nil, fmt.Errorf("failed to insert date dimension rows: %w", err)
		}
	}
	res.Inserted = len(rows)

	return res, nil
}
