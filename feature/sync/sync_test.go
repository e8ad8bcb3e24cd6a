package sync_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"warehouse-sync/core/database"
	srcmodels "warehouse-sync/feature/source/models"
	"warehouse-sync/feature/sync"
	"warehouse-sync/feature/warehouse"
	"warehouse-sync/feature/warehouse/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// base is the timestamp all seed rows carry; safely in the past so any
// watermark captured at run time exceeds it.
var base = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func setupStores(t *testing.T) (src, dst *gorm.DB) {
	dir := t.TempDir()

	src, err := database.Connect(database.Config{Driver: "sqlite", Name: filepath.Join(dir, "source.db")})
	require.NoError(t, err)
	require.NoError(t, src.AutoMigrate(
		&srcmodels.Actor{}, &srcmodels.Category{}, &srcmodels.Country{},
		&srcmodels.City{}, &srcmodels.Address{}, &srcmodels.Store{},
		&srcmodels.Customer{}, &srcmodels.Language{}, &srcmodels.Film{},
		&srcmodels.FilmActor{}, &srcmodels.FilmCategory{},
		&srcmodels.Inventory{}, &srcmodels.Rental{}, &srcmodels.Payment{},
	))

	dst, err = database.Connect(database.Config{Driver: "sqlite", Name: filepath.Join(dir, "warehouse.db")})
	require.NoError(t, err)
	require.NoError(t, warehouse.Provision(dst))

	return src, dst
}

// seedSource loads a small but fully joined operational dataset: two stores,
// two actors, two categories, two customers, two films, two rentals (one
// returned) and two payments on the same calendar date.
func seedSource(t *testing.T, src *gorm.DB) {
	require.NoError(t, src.Create(&srcmodels.Country{CountryID: 1, Country: "Canada", LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.City{CityID: 1, City: "Lethbridge", CountryID: 1, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.City{CityID: 2, City: "Woodridge", CountryID: 1, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Address{AddressID: 1, Address: "47 MySakila Drive", CityID: 1, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Address{AddressID: 2, Address: "28 MySQL Boulevard", CityID: 2, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Address{AddressID: 3, Address: "23 Workhaven Lane", CityID: 1, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Address{AddressID: 4, Address: "1411 Lillydale Drive", CityID: 2, LastUpdate: base}).Error)

	require.NoError(t, src.Create(&srcmodels.Store{StoreID: 1, AddressID: 1, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Store{StoreID: 2, AddressID: 2, LastUpdate: base}).Error)

	require.NoError(t, src.Create(&srcmodels.Actor{ActorID: 1, FirstName: "Penelope", LastName: "Guiness", LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Actor{ActorID: 2, FirstName: "Nick", LastName: "Wahlberg", LastUpdate: base}).Error)

	require.NoError(t, src.Create(&srcmodels.Category{CategoryID: 1, Name: "Action", LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Category{CategoryID: 2, Name: "Comedy", LastUpdate: base}).Error)

	require.NoError(t, src.Create(&srcmodels.Customer{CustomerID: 1, StoreID: 1, FirstName: "Mary", LastName: "Smith", Email: "mary@example.com", AddressID: 3, Active: true, CreateDate: base, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Customer{CustomerID: 2, StoreID: 2, FirstName: "Patricia", LastName: "Johnson", AddressID: 4, Active: true, CreateDate: base, LastUpdate: base}).Error)

	require.NoError(t, src.Create(&srcmodels.Language{LanguageID: 1, Name: "English", LastUpdate: base}).Error)
	year := 2006
	length := 86
	require.NoError(t, src.Create(&srcmodels.Film{FilmID: 1, Title: "Academy Dinosaur", Description: "An epic drama", ReleaseYear: &year, LanguageID: 1, RentalDuration: 6, RentalRate: decimal.RequireFromString("0.99"), Length: &length, Rating: "PG", LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Film{FilmID: 2, Title: "Ace Goldfinger", Description: "An astounding tale", ReleaseYear: &year, LanguageID: 1, RentalDuration: 3, RentalRate: decimal.RequireFromString("4.99"), LastUpdate: base}).Error)

	require.NoError(t, src.Create(&srcmodels.FilmActor{ActorID: 1, FilmID: 1, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.FilmActor{ActorID: 2, FilmID: 1, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.FilmActor{ActorID: 2, FilmID: 2, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.FilmCategory{FilmID: 1, CategoryID: 1, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.FilmCategory{FilmID: 2, CategoryID: 2, LastUpdate: base}).Error)

	require.NoError(t, src.Create(&srcmodels.Inventory{InventoryID: 1, FilmID: 1, StoreID: 1, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Inventory{InventoryID: 2, FilmID: 2, StoreID: 2, LastUpdate: base}).Error)

	returned := base.Add(48 * time.Hour)
	require.NoError(t, src.Create(&srcmodels.Rental{RentalID: 1, RentalDate: base, InventoryID: 1, CustomerID: 1, ReturnDate: &returned, StaffID: 1, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Rental{RentalID: 2, RentalDate: base.Add(time.Hour), InventoryID: 2, CustomerID: 2, StaffID: 1, LastUpdate: base}).Error)

	rental1, rental2 := 1, 2
	require.NoError(t, src.Create(&srcmodels.Payment{PaymentID: 1, CustomerID: 1, StaffID: 1, RentalID: &rental1, Amount: decimal.RequireFromString("2.99"), PaymentDate: base, LastUpdate: base}).Error)
	require.NoError(t, src.Create(&srcmodels.Payment{PaymentID: 2, CustomerID: 2, StaffID: 1, RentalID: &rental2, Amount: decimal.RequireFromString("4.99"), PaymentDate: base.Add(2 * time.Hour), LastUpdate: base}).Error)
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestFullLoad(t *testing.T) {
	src, dst := setupStores(t)
	seedSource(t, src)

	runner := sync.NewRunner(src, dst, zap.NewNop())
	summary, err := runner.Run(context.Background(), sync.ModeFull)
	require.NoError(t, err)
	assert.Equal(t, "full", summary.Mode)
	assert.Zero(t, summary.TotalWarnings())

	assert.EqualValues(t, 2, count(t, dst, &models.DimActor{}))
	assert.EqualValues(t, 2, count(t, dst, &models.DimCategory{}))
	assert.EqualValues(t, 2, count(t, dst, &models.DimStore{}))
	assert.EqualValues(t, 2, count(t, dst, &models.DimCustomer{}))
	assert.EqualValues(t, 2, count(t, dst, &models.DimFilm{}))
	assert.EqualValues(t, 3, count(t, dst, &models.BridgeFilmActor{}))
	assert.EqualValues(t, 2, count(t, dst, &models.BridgeFilmCategory{}))
	assert.EqualValues(t, 2, count(t, dst, &models.FactRental{}))
	assert.EqualValues(t, 2, count(t, dst, &models.FactPayment{}))

	// Denormalized store attributes resolved through the address chain.
	var store models.DimStore
	require.NoError(t, dst.Where("store_id = ?", 1).First(&store).Error)
	assert.Equal(t, "Lethbridge", store.City)
	assert.Equal(t, "Canada", store.Country)

	// Two rental dates, one return date, two payment dates; the seed shares
	// the base calendar day heavily, so distinct days: base day, +1h (same
	// day), +2h (same day), +48h return. Exactly 2 rows.
	assert.EqualValues(t, 2, count(t, dst, &models.DimDate{}))

	// Watermarks exist for every synchronized table.
	assert.EqualValues(t, 10, count(t, dst, &models.SyncWatermark{}))

	// Referential completeness: every fact key resolves to a dimension row.
	var orphans int64
	require.NoError(t, dst.Raw(`
		SELECT COUNT(*) FROM fact_rental f
		LEFT JOIN dim_customer c ON f.customer_key = c.customer_key
		LEFT JOIN dim_film m ON f.film_key = m.film_key
		LEFT JOIN dim_store s ON f.store_key = s.store_key
		WHERE c.customer_key IS NULL OR m.film_key IS NULL OR s.store_key IS NULL
	`).Scan(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestFullLoadRequiresEmptyWarehouse(t *testing.T) {
	src, dst := setupStores(t)
	seedSource(t, src)

	runner := sync.NewRunner(src, dst, zap.NewNop())
	_, err := runner.Run(context.Background(), sync.ModeFull)
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), sync.ModeFull)
	assert.Error(t, err)
}

func TestIncrementalAfterFullLoadIsIdempotent(t *testing.T) {
	src, dst := setupStores(t)
	seedSource(t, src)

	runner := sync.NewRunner(src, dst, zap.NewNop())
	_, err := runner.Run(context.Background(), sync.ModeFull)
	require.NoError(t, err)

	keysBefore := actorKeys(t, dst)
	factsBefore := count(t, dst, &models.FactPayment{})

	// No source changes between runs: zero additional rows, identical keys.
	_, err = runner.Run(context.Background(), sync.ModeIncremental)
	require.NoError(t, err)

	assert.Equal(t, keysBefore, actorKeys(t, dst))
	assert.Equal(t, factsBefore, count(t, dst, &models.FactPayment{}))
	assert.EqualValues(t, 2, count(t, dst, &models.DimActor{}))
	assert.EqualValues(t, 3, count(t, dst, &models.BridgeFilmActor{}))
}

func TestIncrementalKeyStability(t *testing.T) {
	src, dst := setupStores(t)
	seedSource(t, src)

	runner := sync.NewRunner(src, dst, zap.NewNop())
	_, err := runner.Run(context.Background(), sync.ModeFull)
	require.NoError(t, err)

	keysBefore := actorKeys(t, dst)

	// Rename an actor after the first pass; its change timestamp must exceed
	// the watermark captured at run start.
	changed := time.Now().UTC().Add(time.Minute)
	require.NoError(t, src.Model(&srcmodels.Actor{}).
		Where("actor_id = ?", 1).
		Updates(map[string]any{"first_name": "Penny", "last_update": changed}).Error)

	summary, err := runner.Run(context.Background(), sync.ModeIncremental)
	require.NoError(t, err)

	// The rename travelled, under the same surrogate key.
	var actor models.DimActor
	require.NoError(t, dst.Where("actor_id = ?", 1).First(&actor).Error)
	assert.Equal(t, "Penny", actor.FirstName)
	assert.Equal(t, keysBefore, actorKeys(t, dst))
	assert.EqualValues(t, 2, count(t, dst, &models.DimActor{}))

	for _, e := range summary.Entities {
		if e.Table == "dim_actor" {
			assert.Equal(t, 1, e.Updated)
			assert.Equal(t, 0, e.Inserted)
		}
	}
}

func TestIncrementalPicksUpNewTransactions(t *testing.T) {
	src, dst := setupStores(t)
	seedSource(t, src)

	runner := sync.NewRunner(src, dst, zap.NewNop())
	_, err := runner.Run(context.Background(), sync.ModeFull)
	require.NoError(t, err)

	// A new rental and payment for an existing customer, timestamped after
	// the full load's watermark.
	after := time.Now().UTC().Add(time.Minute)
	require.NoError(t, src.Create(&srcmodels.Rental{RentalID: 3, RentalDate: after, InventoryID: 1, CustomerID: 2, StaffID: 1, LastUpdate: after}).Error)
	rental3 := 3
	require.NoError(t, src.Create(&srcmodels.Payment{PaymentID: 3, CustomerID: 2, StaffID: 1, RentalID: &rental3, Amount: decimal.RequireFromString("0.99"), PaymentDate: after, LastUpdate: after}).Error)

	_, err = runner.Run(context.Background(), sync.ModeIncremental)
	require.NoError(t, err)

	assert.EqualValues(t, 3, count(t, dst, &models.FactRental{}))
	assert.EqualValues(t, 3, count(t, dst, &models.FactPayment{}))

	// The new transaction date joined the date dimension exactly once.
	var dateRows int64
	require.NoError(t, dst.Model(&models.DimDate{}).
		Where("date_key = ?", after.Year()*10000+int(after.Month())*100+after.Day()).
		Count(&dateRows).Error)
	assert.EqualValues(t, 1, dateRows)
}

func TestUnresolvedFactReferencesAreSkippedWithWarnings(t *testing.T) {
	src, dst := setupStores(t)
	seedSource(t, src)

	// A rental pointing at a customer the source never defined: its fact
	// must be dropped, warned about, and nothing else disturbed.
	require.NoError(t, src.Create(&srcmodels.Rental{RentalID: 99, RentalDate: base, InventoryID: 1, CustomerID: 999, StaffID: 1, LastUpdate: base}).Error)

	runner := sync.NewRunner(src, dst, zap.NewNop())
	summary, err := runner.Run(context.Background(), sync.ModeFull)
	require.NoError(t, err)

	// 3 source rentals, 1 unresolved: exactly 2 facts and exactly 1 warning.
	assert.EqualValues(t, 2, count(t, dst, &models.FactRental{}))

	var rentalRes *sync.EntityResult
	for _, e := range summary.Entities {
		if e.Table == "fact_rental" {
			rentalRes = e
		}
	}
	require.NotNil(t, rentalRes)
	assert.Equal(t, 1, rentalRes.Skipped)
	assert.Len(t, rentalRes.Warnings, 1)
}

func TestTransformFailureSkipsDimensionRow(t *testing.T) {
	src, dst := setupStores(t)
	seedSource(t, src)

	// A store whose address chain is broken cannot denormalize city/country;
	// the row fails rather than null-filling.
	require.NoError(t, src.Create(&srcmodels.Store{StoreID: 3, AddressID: 777, LastUpdate: base}).Error)

	runner := sync.NewRunner(src, dst, zap.NewNop())
	summary, err := runner.Run(context.Background(), sync.ModeFull)
	require.NoError(t, err)

	assert.EqualValues(t, 2, count(t, dst, &models.DimStore{}))

	for _, e := range summary.Entities {
		if e.Table == "dim_store" {
			assert.Equal(t, 1, e.Skipped)
			assert.Len(t, e.Warnings, 1)
		}
	}
}

func TestDateDimensionHasNoDuplicates(t *testing.T) {
	src, dst := setupStores(t)
	seedSource(t, src)

	runner := sync.NewRunner(src, dst, zap.NewNop())
	_, err := runner.Run(context.Background(), sync.ModeFull)
	require.NoError(t, err)

	// Multiple transactions share the base calendar day; dedup within the
	// pass and against existing rows must leave date keys unique.
	var dup int64
	require.NoError(t, dst.Raw(`
		SELECT COUNT(*) FROM (
			SELECT date_key FROM dim_date GROUP BY date_key HAVING COUNT(*) > 1
		)
	`).Scan(&dup).Error)
	assert.Zero(t, dup)
}

func actorKeys(t *testing.T, dst *gorm.DB) map[int]uint {
	var rows []models.DimActor
	require.NoError(t, dst.Find(&rows).Error)
	keys := make(map[int]uint, len(rows))
	for _, r := range rows {
		keys[r.ActorID] = r.ActorKey
	}
	return keys
}
