package domain

import "time"

// AuditEntry is one append-only record of a committed field change. Entries
// are never mutated or deleted; one entry per changed field per mutation.
type AuditEntry struct {
	ID        string
	JobID     string
	UserID    string
	UserRole  Role
	Timestamp time.Time
	Field     string
	OldValue  string
	NewValue  string
	Reason    string
}
