// Package models declares GORM models for the operational DVD-rental schema.
//
// The synchronizer never writes these tables. Associations are declared where
// the warehouse needs denormalized attributes (store -> address -> city ->
// country, film -> language, rental -> inventory) so readers can eager-load
// the chain in one query.
package models
