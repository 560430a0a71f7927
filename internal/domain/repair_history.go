package domain

import "time"

// RepairHistory is an immutable audit entry recorded for every effective
// status change on a repair ticket.
type RepairHistory struct {
	ID          string
	RepairID    string
	ChangedByID *string
	OldValue    map[string]any
	NewValue    map[string]any
	CreatedAt   time.Time
}
