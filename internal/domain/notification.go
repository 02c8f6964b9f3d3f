package domain

import "time"

// Notification is a per-user message emitted by membership changes.
// Delivery downstream is best-effort; the record is the source of truth.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}
