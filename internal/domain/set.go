package domain

import "time"

// SetRow is the canonical workout set record stored in PostgreSQL. Rows are
// immutable after creation; the lifecycle is create, then optionally delete.
type SetRow struct {
	ID          string
	UserID      string
	Weight      float64
	Exercise    string
	Repetitions int
	CreatedDate time.Time
}
