package sync

import (
	"context"
	"fmt"
	"time"

	"warehouse-sync/core/logger"
	"warehouse-sync/feature/keymap"
	"warehouse-sync/feature/source"
	"warehouse-sync/feature/warehouse/models"
	"warehouse-sync/feature/watermark"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Runner sequences one synchronization pass: dimensions, then bridges, then
// facts, then watermarks, all inside a single warehouse transaction. Ordering
// is a correctness requirement: facts resolve against the key maps the
// dimension passes just refreshed.
type Runner struct {
	src *gorm.DB
	dst *gorm.DB
	log *zap.Logger
}

// NewRunner creates a runner over the two store connections. The source is
// never written to.
func NewRunner(src, dst *gorm.DB, log *zap.Logger) *Runner {
	return &Runner{src: src, dst: dst, log: log}
}

// Run executes a full or incremental pass and returns its summary. On any
// error the warehouse transaction rolls back whole: no partial dimension or
// fact state persists and no watermark advances, so the next run retries the
// same window.
func (r *Runner) Run(ctx context.Context, mode Mode) (*Summary, error) {
	runID := uuid.NewString()
	log := logger.WithRunID(r.log, runID)

	// Watermarks advance to the moment the pass began reading, not commit
	// time, so a row mutated mid-pass is re-inspected next pass.
	readStart := time.Now().UTC()
	summary := &Summary{RunID: runID, Mode: mode.String(), StartedAt: readStart}

	log.Info("Sync pass started", zap.String("mode", mode.String()))

	err := r.dst.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reader := source.NewReader(r.src)
		wm := watermark.NewStore(tx)

		if mode == ModeFull {
			if err := ensureEmptyWarehouse(tx); err != nil {
				return err
			}
		}

		var caches dimensionCaches
		var err error

		if caches.actor, err = runDimension(ctx, tx, wm, actorDimension(reader), mode, readStart, summary, log); err != nil {
			return err
		}
		if caches.category, err = runDimension(ctx, tx, wm, categoryDimension(reader), mode, readStart, summary, log); err != nil {
			return err
		}
		if caches.store, err = runDimension(ctx, tx, wm, storeDimension(reader), mode, readStart, summary, log); err != nil {
			return err
		}
		if caches.customer, err = runDimension(ctx, tx, wm, customerDimension(reader), mode, readStart, summary, log); err != nil {
			return err
		}
		if caches.film, err = runDimension(ctx, tx, wm, filmDimension(reader), mode, readStart, summary, log); err != nil {
			return err
		}

		// Date dimension: natural key derived from transaction timestamps.
		dateSince, err := sinceFor(ctx, wm, "dim_date", mode)
		if err != nil {
			return err
		}
		dateRes, err := syncDates(ctx, reader, tx, dateSince)
		if err != nil {
			return err
		}
		summary.add(dateRes)
		if err := wm.Set(ctx, "dim_date", readStart); err != nil {
			return err
		}

		if err := runBridge(ctx, tx, wm, filmActorBridge(reader), caches.film, caches.actor, mode, readStart, summary, log); err != nil {
			return err
		}
		if err := runBridge(ctx, tx, wm, filmCategoryBridge(reader), caches.film, caches.category, mode, readStart, summary, log); err != nil {
			return err
		}

		rentalSince, err := sinceFor(ctx, wm, "fact_rental", mode)
		if err != nil {
			return err
		}
		rentalRes, err := syncRentalFacts(ctx, reader, tx, caches, rentalSince, log)
		if err != nil {
			return err
		}
		summary.add(rentalRes)
		if err := wm.Set(ctx, "fact_rental", readStart); err != nil {
			return err
		}

		paymentSince, err := sinceFor(ctx, wm, "fact_payment", mode)
		if err != nil {
			return err
		}
		paymentRes, err := syncPaymentFacts(ctx, reader, tx, caches, paymentSince, log)
		if err != nil {
			return err
		}
		summary.add(paymentRes)
		return wm.Set(ctx, "fact_payment", readStart)
	})

	summary.Duration = time.Since(readStart)
	if err != nil {
		log.Error("Sync pass failed, transaction rolled back", zap.Error(err))
		return nil, err
	}

	for _, e := range summary.Entities {
		log.Info("Entity synchronized",
			zap.String("table", e.Table),
			zap.Int("inserted", e.Inserted),
			zap.Int("updated", e.Updated),
			zap.Int("skipped", e.Skipped),
		)
	}
	log.Info("Sync pass finished",
		zap.Duration("duration", summary.Duration),
		zap.Int("warnings", summary.TotalWarnings()),
	)

	return summary, nil
}

// sinceFor returns the change-detection lower bound for a table: zero for a
// full load, the table's watermark otherwise.
func sinceFor(ctx context.Context, wm *watermark.Store, table string, mode Mode) (time.Time, error) {
	if mode == ModeFull {
		return time.Time{}, nil
	}
	return wm.Get(ctx, table)
}

// runDimension executes one dimension pass end to end: watermark read, key
// map build, upserts, watermark advance. The returned cache already contains
// the keys generated during this pass.
func runDimension[S any, D any](ctx context.Context, tx *gorm.DB, wm *watermark.Store, d dimension[S, D], mode Mode, readStart time.Time, summary *Summary, log *zap.Logger) (*keymap.Cache, error) {
	since, err := sinceFor(ctx, wm, d.table, mode)
	if err != nil {
		return nil, err
	}

	cache, err := keymap.Build(ctx, tx, d.table, d.naturalCol, d.surrogateCol)
	if err != nil {
		return nil, err
	}

	res, err := d.run(ctx, tx, cache, mode, since, log)
	if err != nil {
		return nil, err
	}
	summary.add(res)

	if err := wm.Set(ctx, d.table, readStart); err != nil {
		return nil, err
	}
	return cache, nil
}

// runBridge executes one bridge pass end to end.
func runBridge[S any, B any](ctx context.Context, tx *gorm.DB, wm *watermark.Store, b bridge[S, B], left, right *keymap.Cache, mode Mode, readStart time.Time, summary *Summary, log *zap.Logger) error {
	since, err := sinceFor(ctx, wm, b.table, mode)
	if err != nil {
		return err
	}

	res, err := b.run(ctx, tx, left, right, since, log)
	if err != nil {
		return err
	}
	summary.add(res)

	return wm.Set(ctx, b.table, readStart)
}

// ensureEmptyWarehouse guards full mode: bulk inserts assume no existing
// surrogate keys, so a populated warehouse must go through incremental.
func ensureEmptyWarehouse(tx *gorm.DB) error {
	for _, model := range []any{&models.DimActor{}, &models.DimFilm{}, &models.FactRental{}, &models.FactPayment{}} {
		var count int64
		if err := tx.Model(model).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check warehouse state: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("full load requires an empty warehouse, found existing rows; run incremental instead")
		}
	}
	return nil
}
