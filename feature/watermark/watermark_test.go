package watermark_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"warehouse-sync/core/database"
	"warehouse-sync/feature/warehouse/models"
	"warehouse-sync/feature/watermark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *watermark.Store {
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   filepath.Join(t.TempDir(), "warehouse.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SyncWatermark{}))
	return watermark.NewStore(db)
}

func TestGetUnsetReturnsZeroTime(t *testing.T) {
	store := setupStore(t)

	ts, err := store.Get(context.Background(), "dim_actor")
	require.NoError(t, err)
	assert.True(t, ts.IsZero(), "uninitialized watermark must behave like everything-is-new")
}

func TestSetThenGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Set(ctx, "fact_payment", first))

	got, err := store.Get(ctx, "fact_payment")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	// Advancing overwrites the single row rather than adding a second.
	second := first.Add(24 * time.Hour)
	require.NoError(t, store.Set(ctx, "fact_payment", second))

	got, err = store.Get(ctx, "fact_payment")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestWatermarksAreIndependentPerTable(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Set(ctx, "dim_film", a))
	require.NoError(t, store.Set(ctx, "fact_rental", b))

	gotA, err := store.Get(ctx, "dim_film")
	require.NoError(t, err)
	gotB, err := store.Get(ctx, "fact_rental")
	require.NoError(t, err)

	assert.Equal(t, a, gotA)
	assert.Equal(t, b, gotB)
}
