// Package booking holds the core booking domain: the approval status machine
// and conflict detection over room time slots. It has no dependencies on
// persistence or transport and never logs.
package booking

import (
	"sort"
	"time"

	"github.com/example/roombook/internal/timewindow"
)

// Status is the approval state of a booking.
type Status string

const (
	// StatusPending is the initial state of every created booking.
	StatusPending Status = "pending"
	// StatusApproved marks a booking accepted by an administrator.
	StatusApproved Status = "approved"
	// StatusDeclined marks a booking rejected by an administrator. Declined
	// bookings never participate in conflict detection.
	StatusDeclined Status = "declined"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined:
		return true
	}
	return false
}

// Blocking reports whether a booking in this status occupies its time slot
// for conflict purposes.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusApproved
}

// CanTransitionTo reports whether the approval flow permits moving from the
// receiver to next. Pending may move to approved or declined; repeating a
// decision is permitted so the operations stay idempotent, but a decided
// booking cannot flip to the opposite decision.
func (s Status) CanTransitionTo(next Status) bool {
	switch next {
	case StatusApproved:
		return s == StatusPending || s == StatusApproved
	case StatusDeclined:
		return s == StatusPending || s == StatusDeclined
	}
	return false
}

// Booking represents a reserved time slot for a room.
type Booking struct {
	ID        string
	RoomID    string
	Title     string
	Organizer string
	Start     time.Time
	End       time.Time
	Status    Status
	CreatedAt time.Time
}

// Blocking reports whether the booking occupies its slot for conflict checks.
func (b Booking) Blocking() bool {
	return b.Status.Blocking()
}

// FindConflicts returns the blocking bookings for roomID whose intervals
// overlap the candidate [start, end). Touching boundaries are not conflicts.
// When excludeID is non-empty, the booking with that ID is skipped, which lets
// an edit be validated against every booking except itself. The result is
// ordered by start time, then ID, for deterministic reporting.
func FindConflicts(roomID string, start, end time.Time, existing []Booking, excludeID string) []Booking {
	var conflicts []Booking
	for _, b := range existing {
		if b.RoomID != roomID {
			continue
		}
		if !b.Blocking() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if timewindow.Overlap(start, end, b.Start, b.End) {
			conflicts = append(conflicts, b)
		}
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Start.Equal(conflicts[j].Start) {
			return conflicts[i].ID < conflicts[j].ID
		}
		return conflicts[i].Start.Before(conflicts[j].Start)
	})

	return conflicts
}
