package sync

import (
	"context"
	"fmt"
	"time"

	"warehouse-sync/feature/keymap"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bridge describes one many-to-many association sync. S is the source
// association row, B the warehouse bridge row (a bare composite key).
type bridge[S any, B any] struct {
	table string

	fetch        func(ctx context.Context, since time.Time) ([]S, error)
	leftNatural  func(S) int
	rightNatural func(S) int
	makeRow      func(left, right uint) B
}

// run resolves both sides of each changed association through their key-map
// caches. An unresolved side means the dimension member is not synchronized
// yet, an expected transient state in incremental mode: the row is dropped
// with a warning, never inserted with a dangling key. Resolved pairs insert
// idempotently; an existing pair is a no-op, not an error.
func (b bridge[S, B]) run(ctx context.Context, tx *gorm.DB, left, right *keymap.Cache, since time.Time, log *zap.Logger) (*EntityResult, error) {
	rows, err := b.fetch(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source rows for %s: %w", b.table, err)
	}

	res := &EntityResult{Table: b.table}

	for _, src := range rows {
		leftNat := b.leftNatural(src)
		rightNat := b.rightNatural(src)

		leftKey, ok := left.Resolve(leftNat)
		if !ok {
			warn := fmt.Sprintf("%s: %s %d not in dimension, dropping association", b.table, left.Dimension(), leftNat)
			res.Skipped++
			res.Warnings = append(res.Warnings, warn)
			log.Warn("Unresolved bridge key", zap.String("table", b.table), zap.String("dimension", left.Dimension()), zap.Int("natural_key", leftNat))
			continue
		}

		rightKey, ok := right.Resolve(rightNat)
		if !ok {
			warn := fmt.Sprintf("%s: %s %d not in dimension, dropping association", b.table, right.Dimension(), rightNat)
			res.Skipped++
			res.Warnings = append(res.Warnings, warn)
			log.Warn("Unresolved bridge key", zap.String("table", b.table), zap.String("dimension", right.Dimension()), zap.Int("natural_key", rightNat))
			continue
		}

		row := b.makeRow(leftKey, rightKey)
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if result.Error != nil {
			return nil, fmt.Errorf("failed to insert %s pair (%d,%d): %w", b.table, leftKey, rightKey, result.Error)
		}
		if result.RowsAffected > 0 {
			res.Inserted++
		} else {
			res.Updated++ // pair already present, counted as a refresh
		}
	}

	return res, nil
}
