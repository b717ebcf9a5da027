// Package timeline provides clock-time parsing and timeline position math.
package timeline

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrInvalidClockFormat = errors.New("time must be in HH:MM format")
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrWindowInverted     = errors.New("window end must be after window start")
)

// ParseClock validates a "HH:MM" string and returns minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidClockFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return 0, ErrInvalidClockFormat
	}
	return ToMinutes(s), nil
}

// ToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func ToMinutes(s string) int {
	if len(s) < 5 {
		return 0
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	return hours*60 + mins
}

// FromMinutes converts minutes since midnight to "HH:MM" format.
func FromMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// AddMinutes returns the "HH:MM" time m minutes after the given time.
func AddMinutes(s string, m int) string {
	return FromMinutes(ToMinutes(s) + m)
}

// Overlap returns true if two time ranges overlap.
// Two ranges overlap if: start1 < end2 AND start2 < end1.
func Overlap(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

// OverlapMinutes calculates the overlapping minutes between two time ranges.
// Returns 0 if there is no overlap.
func OverlapMinutes(start1, end1, start2, end2 string) int {
	s1, e1 := ToMinutes(start1), ToMinutes(end1)
	s2, e2 := ToMinutes(start2), ToMinutes(end2)

	overlapStart := max(s1, s2)
	overlapEnd := min(e1, e2)

	if overlapEnd <= overlapStart {
		return 0
	}
	return overlapEnd - overlapStart
}

// Snap rounds minutes to the nearest multiple of the snap granularity.
// A granularity of zero or less leaves the value untouched.
func Snap(mins, snap int) int {
	if snap <= 0 {
		return mins
	}
	remainder := mins % snap
	if remainder*2 >= snap {
		return mins + snap - remainder
	}
	return mins - remainder
}

// Window is the visible portion of a dispatch day, in minutes since midnight.
type Window struct {
	Start int
	End   int
}

// NewWindow builds a Window from "HH:MM" boundaries.
func NewWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, fmt.Errorf("window start: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, fmt.Errorf("window end: %w", err)
	}
	if e <= s {
		return Window{}, ErrWindowInverted
	}
	return Window{Start: s, End: e}, nil
}

// Minutes returns the window length in minutes.
func (w Window) Minutes() int {
	return w.End - w.Start
}

// Contains returns true if the "HH:MM" time falls inside the window.
func (w Window) Contains(s string) bool {
	m := ToMinutes(s)
	return m >= w.Start && m < w.End
}

// ClampStart clamps a start time (minutes) so a tour of the given duration
// fits inside the window. When the duration exceeds the window the window
// start wins.
func (w Window) ClampStart(mins, durationMin int) int {
	latest := w.End - durationMin
	if mins > latest {
		mins = latest
	}
	if mins < w.Start {
		mins = w.Start
	}
	return mins
}

// PositionToTime converts a vertical offset on the rendered timeline to a
// snapped "HH:MM" start time. offset is the row (or pixel) index from the top
// of the window, unitMin the minutes each row represents. The result is a
// multiple of snapMin and clamped so a tour of durationMin fits inside the
// window.
func (w Window) PositionToTime(offset, unitMin, snapMin, durationMin int) string {
	mins := w.Start + offset*unitMin
	mins = Snap(mins, snapMin)
	mins = w.ClampStart(mins, durationMin)
	return FromMinutes(mins)
}

// TimeToPosition is the inverse of PositionToTime: the row index of a "HH:MM"
// time, rounded down. Times before the window start map to row 0.
func (w Window) TimeToPosition(s string, unitMin int) int {
	if unitMin <= 0 {
		return 0
	}
	m := ToMinutes(s) - w.Start
	if m < 0 {
		return 0
	}
	return m / unitMin
}

// Rows returns the number of rows needed to render the window at the given
// minutes-per-row resolution.
func (w Window) Rows(unitMin int) int {
	if unitMin <= 0 {
		return 0
	}
	return (w.Minutes() + unitMin - 1) / unitMin
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date at local midnight.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
