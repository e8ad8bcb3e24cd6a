package sync

import (
	"context"
	"fmt"
	"time"

	"warehouse-sync/feature/keymap"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const insertBatchSize = 500

// dimension describes one dimension's sync in terms of its source fetch, its
// transform into warehouse shape, and how to read/set its keys. S is the
// source row type, D the warehouse dimension type.
type dimension[S any, D any] struct {
	table        string
	naturalCol   string
	surrogateCol string

	fetch func(ctx context.Context, since time.Time) ([]S, error)
	// transform fails the row when a required attribute cannot be produced;
	// it never null-fills identifiers or joined attributes.
	transform  func(S) (D, error)
	naturalKey func(D) int
	surrogate  func(D) uint
	setKey     func(*D, uint)
}

// run executes one dimension pass. The upsert decision is an explicit cache
// lookup: a natural key already mapped keeps its surrogate key and the row is
// updated in place; an unmapped key inserts and extends the cache. This is
// what keeps surrogate keys stable across reruns.
func (d dimension[S, D]) run(ctx context.Context, tx *gorm.DB, cache *keymap.Cache, mode Mode, since time.Time, log *zap.Logger) (*EntityResult, error) {
	rows, err := d.fetch(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source rows for %s: %w", d.table, err)
	}

	res := &EntityResult{Table: d.table}

	if mode == ModeFull {
		return d.bulkLoad(tx, cache, rows, res, log)
	}

	for _, src := range rows {
		dim, err := d.transform(src)
		if err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, err.Error())
			log.Warn("Skipping dimension row", zap.String("table", d.table), zap.Error(err))
			continue
		}

		nat := d.naturalKey(dim)
		if existing, ok := cache.Resolve(nat); ok {
			d.setKey(&dim, existing)
			if err := tx.Save(&dim).Error; err != nil {
				return nil, fmt.Errorf("failed to update %s row %d: %w", d.table, nat, err)
			}
			res.Updated++
		} else {
			if err := tx.Create(&dim).Error; err != nil {
				return nil, fmt.Errorf("failed to insert %s row %d: %w", d.table, nat, err)
			}
			cache.Put(nat, d.surrogate(dim))
			res.Inserted++
		}
	}

	return res, nil
}

// bulkLoad is the full-mode path: transform everything, insert in batches,
// then record the generated keys so later stages of the run can resolve them.
func (d dimension[S, D]) bulkLoad(tx *gorm.DB, cache *keymap.Cache, rows []S, res *EntityResult, log *zap.Logger) (*EntityResult, error) {
	dims := make([]D, 0, len(rows))
	for _, src := range rows {
		dim, err := d.transform(src)
		if err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, err.Error())
			log.Warn("Skipping dimension row", zap.String("table", d.table), zap.Error(err))
			continue
		}
		dims = append(dims, dim)
	}

	if len(dims) > 0 {
		if err := tx.CreateInBatches(&dims, insertBatchSize).Error; err != nil {
			return nil, fmt.Errorf("failed to bulk insert %s: %w", d.table, err)
		}
	}

	// GORM backfills autoincrement keys on batch create.
	for _, dim := range dims {
		cache.Put(d.naturalKey(dim), d.surrogate(dim))
	}
	res.Inserted = len(dims)

	return res, nil
}
