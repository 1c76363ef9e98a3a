// Package availability computes the live status of a room from its work-hours
// window and an already-filtered set of bookings. The resolver does not decide
// which booking statuses count; callers pass in the bookings that should be
// considered.
package availability

import (
	"time"

	"github.com/example/roombook/internal/booking"
	"github.com/example/roombook/internal/timewindow"
)

// Status is the displayed availability of a room.
type Status string

const (
	// StatusAvailable means the room can be booked right now.
	StatusAvailable Status = "available"
	// StatusBusy means a booking currently occupies the room.
	StatusBusy Status = "busy"
	// StatusUnavailable means the room is inactive or outside its work hours.
	StatusUnavailable Status = "unavailable"
)

// Window is a daily work-hours window expressed as zero-padded "HH:MM" values.
type Window struct {
	Start string
	End   string
}

// Room carries the attributes the resolver needs.
type Room struct {
	Active    bool
	WorkHours Window
}

// Info is the derived status of a room at a single instant. It is computed
// fresh on every call and never persisted.
type Info struct {
	Status     Status
	Message    string
	NextChange *time.Time
}

// clockFormat renders instants the way the booking dashboard displays them.
const clockFormat = "3:04 PM"

// Resolve determines the room status at now.
//
// Priority order: an inactive room is unavailable; an instant outside the
// work-hours window is unavailable; a booking covering now makes the room
// busy until that booking ends; otherwise the room is available, until the
// earliest future booking if one exists. A booking ending exactly at now is
// over, and one starting exactly at now is current, so the boundary instant
// belongs to the booking that starts there.
func Resolve(room Room, bookings []booking.Booking, now time.Time) (Info, error) {
	if !room.Active {
		return Info{Status: StatusUnavailable, Message: "Room is inactive"}, nil
	}

	inside, err := timewindow.InWindow(now, room.WorkHours.Start, room.WorkHours.End)
	if err != nil {
		return Info{}, err
	}
	if !inside {
		return Info{Status: StatusUnavailable, Message: "Outside work hours"}, nil
	}

	if current, ok := currentBooking(bookings, now); ok {
		end := current.End
		return Info{
			Status:     StatusBusy,
			Message:    "Busy until " + end.Format(clockFormat),
			NextChange: &end,
		}, nil
	}

	if next, ok := nextBooking(bookings, now); ok {
		start := next.Start
		return Info{
			Status:     StatusAvailable,
			Message:    "Available until " + start.Format(clockFormat),
			NextChange: &start,
		}, nil
	}

	return Info{Status: StatusAvailable, Message: "Available"}, nil
}

func currentBooking(bookings []booking.Booking, now time.Time) (booking.Booking, bool) {
	var current booking.Booking
	found := false
	for _, b := range bookings {
		if b.Start.After(now) || !b.End.After(now) {
			continue
		}
		if !found || earlier(b, current) {
			current = b
			found = true
		}
	}
	return current, found
}

func nextBooking(bookings []booking.Booking, now time.Time) (booking.Booking, bool) {
	var next booking.Booking
	found := false
	for _, b := range bookings {
		if !b.Start.After(now) {
			continue
		}
		if !found || earlier(b, next) {
			next = b
			found = true
		}
	}
	return next, found
}

// earlier orders bookings by start time, then ID, for deterministic selection.
func earlier(a, b booking.Booking) bool {
	if a.Start.Equal(b.Start) {
		return a.ID < b.ID
	}
	return a.Start.Before(b.Start)
}
