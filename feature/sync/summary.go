package sync

import "time"

// Mode selects between a first-time full load and a repeatable incremental pass.
type Mode int

const (
	// ModeFull loads everything; only valid against an empty warehouse.
	ModeFull Mode = iota
	// ModeIncremental loads rows changed since each table's watermark.
	ModeIncremental
)

func (m Mode) String() string {
	if m == ModeFull {
		return "full"
	}
	return "incremental"
}

// EntityResult counts the outcome of one table's pass.
type EntityResult struct {
	Table    string   `json:"table"`
	Inserted int      `json:"inserted"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// Summary is the per-run report returned by the orchestrator. Entities appear
// in execution order: dimensions, bridges, facts.
type Summary struct {
	RunID     string          `json:"run_id"`
	Mode      string          `json:"mode"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
	Entities  []*EntityResult `json:"entities"`
}

func (s *Summary) add(res *EntityResult) {
	s.Entities = append(s.Entities, res)
}

// TotalWarnings counts warnings across all entities.
func (s *Summary) TotalWarnings() int {
	n := 0
	for _, e := range s.Entities {
		n += len(e.Warnings)
	}
	return n
}
