package queue

// DayRunCompletedEvent is published after an apply-mode day run
// finishes.  It carries the aggregate totals so downstream consumers
// can log, notify or feed dashboards without re-querying the primary
// database.
type DayRunCompletedEvent struct {
	Date              string `json:"date"`
	Mode              string `json:"mode"`
	Processed         int    `json:"processed"`
	Updated           int    `json:"updated"`
	NoFit             int    `json:"no_fit"`
	Conflicts         int    `json:"conflicts"`
	SkippedInvalid    int    `json:"skipped_invalid"`
	SkippedLocked     int    `json:"skipped_locked"`
	Errors            int    `json:"errors"`
	DistinctConflicts int    `json:"distinct_conflicts"`
	RanBy             string `json:"ran_by"`
	CompletedAt       string `json:"completed_at"`
}
