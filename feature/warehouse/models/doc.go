// Package models declares GORM models for the analytical star schema:
// dimensions, bridges, facts and the sync watermark table.
package models
