// Package warehouse owns the analytical store's schema.
//
// Provision creates the star schema (dimensions, bridges, facts, watermark
// table) through GORM's migrator. The warehouse is the sole owner of
// surrogate keys and watermarks; nothing in this system writes back to the
// operational store.
package warehouse
