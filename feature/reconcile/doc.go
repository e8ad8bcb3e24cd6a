// Package reconcile detects drift between the operational store and the
// warehouse.
//
// The engine recomputes the same business metrics independently on both
// sides over a trailing window: transaction counts, the summed monetary
// measure, and the sum grouped by store. Monetary values are normalized to
// one decimal representation and compared with a half-cent tolerance, so
// store-specific numeric types cannot produce phantom mismatches.
//
// A failed check is information, not an error: the report carries per-check
// outcomes, the full per-group tables from both sides, and an overall
// failure count. Nothing is ever written to either store.
package reconcile
