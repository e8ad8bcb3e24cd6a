package config_test

import (
	"testing"

	"warehouse-sync/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Source.Driver)
	assert.Equal(t, 3306, cfg.Source.Port)
	assert.Equal(t, "mysql", cfg.Warehouse.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Reconcile.WindowDays)
	assert.Equal(t, "warehouse-reports", cfg.Storage.Bucket)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SOURCE_HOST", "opdb.internal")
	t.Setenv("WAREHOUSE_NAME", "dvdrental_dw")
	t.Setenv("RECONCILE_WINDOW_DAYS", "7")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "opdb.internal", cfg.Source.Host)
	assert.Equal(t, "dvdrental_dw", cfg.Warehouse.Name)
	assert.Equal(t, 7, cfg.Reconcile.WindowDays)
}
