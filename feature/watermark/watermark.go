package watermark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warehouse-sync/feature/warehouse/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists per-table sync watermarks in the warehouse.
type Store struct {
	db *gorm.DB
}

// NewStore creates a watermark store over a warehouse connection. The
// connection may be a transaction handle; Set must run inside the same
// transaction as the writes it covers.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the last successful sync timestamp for a table. If the table
// has never synced it returns the zero time, which downstream change
// detection treats as "everything is new".
func (s *Store) Get(ctx context.Context, tableName string) (time.Time, error) {
	var row models.SyncWatermark
	err := s.db.WithContext(ctx).
		Where("table_name = ?", tableName).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read watermark for %s: %w", tableName, err)
	}
	return row.LastSyncedAt.UTC(), nil
}

// Set records the watermark for a table, creating the row on first sync.
// Callers pass the moment the pass began reading, not the commit time, so a
// row mutated mid-pass is re-inspected next pass instead of being lost.
func (s *Store) Set(ctx context.Context, tableName string, ts time.Time) error {
	row := models.SyncWatermark{Table: tableName, LastSyncedAt: ts.UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "table_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_synced_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to set watermark for %s: %w", tableName, err)
	}
	return nil
}
