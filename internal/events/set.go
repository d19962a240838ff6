// Package events defines the event payloads published by the gymlog service.
package events

import "time"

// SetCreated represents the message emitted when a new set is recorded.
type SetCreated struct {
	SetID       string    `json:"set_id"`
	UserID      string    `json:"user_id"`
	Exercise    string    `json:"exercise"`
	Weight      float64   `json:"weight"`
	Repetitions int       `json:"repetitions"`
	CreatedDate time.Time `json:"created_date"`
}

// SetDeleted represents the message emitted when an owned set is removed.
type SetDeleted struct {
	SetID      string    `json:"set_id"`
	UserID     string    `json:"user_id"`
	Exercise   string    `json:"exercise"`
	OccurredAt time.Time `json:"occurred_at"`
}
