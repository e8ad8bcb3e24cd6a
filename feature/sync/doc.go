// Package sync implements the dimensional synchronization engine.
//
// One pass moves changes from the operational store into the star schema:
// dimensions first, then the date dimension, then bridges, then facts, each
// advancing its own watermark, all inside a single warehouse transaction.
// Any failure rolls the whole pass back, watermarks included, so the next
// run retries the same window.
//
// # Key Stability
//
// Every dimension upsert is decided by an explicit key-map lookup: a natural
// key already mapped keeps its surrogate key and updates in place, an
// unmapped one inserts and extends the run-scoped cache. Combined with
// read-time watermarks this gives at-least-once inspection with exactly-once
// effect — reruns over an overlapping window change nothing.
//
// # Unresolved References
//
// A bridge or fact row whose natural key does not resolve against a
// dimension is dropped with a warning and counted as skipped. In incremental
// mode this is an expected transient state, not a defect; the row is picked
// up once its dimension member arrives.
package sync
