// README: Booking aggregate, status set, and time-derived status rules.
package booking

import (
	"time"

	"cabway/internal/types"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses are absorbing: once reached, neither reconciliation
// nor an explicit status-change request moves a booking out of them.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking occupies the half-open interval [StartTime, EndTime) on its
// cab. Cost is computed once at creation and never recomputed; later
// price changes on the cab do not affect it. Bookings are never
// deleted.
type Booking struct {
	ID              types.ID
	UserEmail       string
	SourceID        types.ID
	SourceName      string
	DestinationID   types.ID
	DestinationName string
	CabID           types.ID
	CabName         string
	StartTime       time.Time
	EndTime         time.Time
	Cost            float64
	Status          Status
}

// Reconcile derives the current status from the stored one and the
// clock. Pure; idempotent; terminal statuses pass through unchanged.
func Reconcile(s Status, start, end, now time.Time) Status {
	switch s {
	case StatusPending:
		if !now.Before(end) {
			return StatusCompleted
		}
		if !now.Before(start) {
			return StatusInProgress
		}
		return StatusPending
	case StatusInProgress:
		if !now.Before(end) {
			return StatusCompleted
		}
		return StatusInProgress
	default:
		return s
	}
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// share at least one instant.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
