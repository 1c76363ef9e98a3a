// Package timewindow provides pure interval arithmetic for booking slots and
// daily work-hours windows. Functions here are deterministic and side-effect
// free; callers are responsible for mapping failures to their own error types.
package timewindow

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClockTime is returned when a "HH:MM" value cannot be parsed.
var ErrInvalidClockTime = errors.New("timewindow: invalid clock time")

// Overlap reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant. Back-to-back intervals, where one
// ends exactly when the other starts, do not overlap.
func Overlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ParseHHMM parses a zero-padded 24-hour "HH:MM" value into minutes since
// midnight.
func ParseHHMM(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, value)
	}
	hour, ok1 := twoDigits(value[0], value[1])
	minute, ok2 := twoDigits(value[3], value[4])
	if !ok1 || !ok2 || hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, value)
	}
	return hour*60 + minute, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// MinuteOfDay returns the number of minutes elapsed since midnight for t in
// its own location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// WorkMinutesPerDay returns the length of the daily window in minutes.
func WorkMinutesPerDay(startHHMM, endHHMM string) (int, error) {
	start, err := ParseHHMM(startHHMM)
	if err != nil {
		return 0, err
	}
	end, err := ParseHHMM(endHHMM)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// InWindow reports whether t falls inside the daily window. The end boundary
// is inclusive: an instant at exactly the window end still counts as inside,
// matching how room work hours are displayed.
func InWindow(t time.Time, startHHMM, endHHMM string) (bool, error) {
	start, err := ParseHHMM(startHHMM)
	if err != nil {
		return false, err
	}
	end, err := ParseHHMM(endHHMM)
	if err != nil {
		return false, err
	}
	minute := MinuteOfDay(t)
	return minute >= start && minute <= end, nil
}

// ClipToWindow computes how many minutes of [start, end) fall inside the daily
// window [startHHMM, endHHMM) anchored on start's calendar day. An empty or
// inverted clipped range yields zero.
func ClipToWindow(start, end time.Time, startHHMM, endHHMM string) (int, error) {
	windowStartMin, err := ParseHHMM(startHHMM)
	if err != nil {
		return 0, err
	}
	windowEndMin, err := ParseHHMM(endHHMM)
	if err != nil {
		return 0, err
	}

	year, month, day := start.Date()
	loc := start.Location()
	windowStart := time.Date(year, month, day, windowStartMin/60, windowStartMin%60, 0, 0, loc)
	windowEnd := time.Date(year, month, day, windowEndMin/60, windowEndMin%60, 0, 0, loc)

	clippedStart := start
	if windowStart.After(clippedStart) {
		clippedStart = windowStart
	}
	clippedEnd := end
	if windowEnd.Before(clippedEnd) {
		clippedEnd = windowEnd
	}

	if !clippedStart.Before(clippedEnd) {
		return 0, nil
	}
	return int(clippedEnd.Sub(clippedStart) / time.Minute), nil
}
