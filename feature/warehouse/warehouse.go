package warehouse

import (
	"fmt"

	"warehouse-sync/feature/warehouse/models"

	"gorm.io/gorm"
)

// Tables lists every model in dependency order: dimensions first, then
// bridges and facts that reference them, then the watermark table.
func Tables() []any {
	return []any{
		&models.DimActor{},
		&models.DimCategory{},
		&models.DimStore{},
		&models.DimCustomer{},
		&models.DimFilm{},
		&models.DimDate{},
		&models.BridgeFilmActor{},
		&models.BridgeFilmCategory{},
		&models.FactRental{},
		&models.FactPayment{},
		&models.SyncWatermark{},
	}
}

// Provision creates the analytical schema. It is idempotent: existing tables
// are left alone, so running init against a populated warehouse is safe.
func Provision(db *gorm.DB) error {
	if err := db.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("failed to provision warehouse schema: %w", err)
	}
	return nil
}
