package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

// Check is one scalar comparison between the two stores.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// GroupRow is one group's values from both sides of a grouped comparison.
type GroupRow struct {
	Group  string          `json:"group"`
	Source decimal.Decimal `json:"source"`
	Target decimal.Decimal `json:"target"`
	Passed bool            `json:"passed"`
}

// GroupedCheck compares a measure broken down by a dimension attribute. The
// full per-group table from both sides is kept so a discrepancy can be
// diagnosed without re-querying either store.
type GroupedCheck struct {
	Name   string     `json:"name"`
	Rows   []GroupRow `json:"rows"`
	Passed bool       `json:"passed"`
}

// Report is the outcome of one validation run. It never implies any data was
// changed; reconciliation is read-only on both stores.
type Report struct {
	RunID       string         `json:"run_id"`
	WindowStart time.Time      `json:"window_start"`
	WindowEnd   time.Time      `json:"window_end"`
	Checks      []Check        `json:"checks"`
	Grouped     []GroupedCheck `json:"grouped"`
	Failed      int            `json:"failed"`
	Passed      bool           `json:"passed"`
	GeneratedAt time.Time      `json:"generated_at"`
}
