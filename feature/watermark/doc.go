// Package watermark persists the change-detection boundary for each
// synchronized table.
//
// A watermark is the timestamp captured when the last successful pass began
// reading. Read-time capture is deliberate: a source row mutated after the
// read started carries a change timestamp at or above the new watermark and
// is reliably picked up by the next pass. The cost is at-least-once
// re-inspection, which the natural-key upserts absorb.
//
// Set runs inside the pass's warehouse transaction, so a rolled-back pass
// leaves the watermark untouched and the next run retries the same window.
package watermark
