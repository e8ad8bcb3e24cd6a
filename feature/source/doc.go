// Package source reads the operational DVD-rental store.
//
// The Reader is the only gateway the sync engine has to the source system:
// one FindChangedSince-style method per entity, with eager loading for the
// joins the warehouse denormalizes. A zero watermark degrades every query to
// a full scan, which is exactly the full-load behavior.
//
// Facts use an inclusive-OR filter over the row's own last_update and its
// business timestamp, so a transaction completed after the watermark is
// picked up even when it was opened before it.
package source
