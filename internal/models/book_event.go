package models

import "time"

// Book event types recorded in the audit log.
const (
	EventCreated = "CREATED"
	EventDeleted = "DELETED"
)

// BookEvent is a single audit log entry.
type BookEvent struct {
	EventID    string    `json:"event_id" db:"id"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
	Type       string    `json:"type" db:"type"` // CREATED | DELETED
	BookID     int       `json:"book_id" db:"book_id"`
	Title      string    `json:"title" db:"title"`
	Actor      string    `json:"actor" db:"actor"` // username that made the change
}
