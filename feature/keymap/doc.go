// Package keymap builds and holds natural-key to surrogate-key mappings for
// one dimension.
//
// Resolve returns an explicit (key, ok) pair instead of a zero default; the
// caller decides whether an unresolved key fails the row or skips it. Caches
// are run-scoped by construction: the orchestrator builds them after each
// dimension pass and hands them to the bridge and fact synchronizers, so no
// mapping ever leaks between runs.
package keymap
