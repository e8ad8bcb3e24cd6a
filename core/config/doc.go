// Package config loads the application configuration.
//
// Configuration comes from environment variables, optionally seeded by a .env
// file. Defaults are declared as `default:` struct tags on the partial config
// structs owned by each package (database, logger, storage, server,
// reconcile) and registered in Viper via reflection, so every key is
// overridable from the environment without further wiring.
//
// # Naming
//
// Nested keys map to underscore-delimited environment variables:
//
//	source.host        -> SOURCE_HOST
//	warehouse.password -> WAREHOUSE_PASSWORD
//	reconcile.window_days -> RECONCILE_WINDOW_DAYS
package config
