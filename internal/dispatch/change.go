package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownChangeType guards the exhaustive switches over ChangeType.
var ErrUnknownChangeType = errors.New("unknown change type")

// ChangeType tags the mutation primitives understood by the batch boundary.
type ChangeType string

const (
	ChangeAssign    ChangeType = "assign"
	ChangeUnassign  ChangeType = "unassign"
	ChangeReassign  ChangeType = "reassign"
	ChangeTimeShift ChangeType = "time-shift"
)

// Change is one mutation primitive. Which fields are meaningful depends on
// Type:
//
//	assign      BookingIDs, ToGuide
//	unassign    BookingIDs, FromGuide
//	reassign    BookingIDs, FromGuide, ToGuide
//	time-shift  BookingIDs, GuideID, NewStart (PrevStart for inversion)
type Change struct {
	Type       ChangeType
	BookingIDs []string
	FromGuide  string
	ToGuide    string
	GuideID    string
	NewStart   string // "HH:MM"
	PrevStart  string // pre-mutation time, carried for Invert
}

// Invert returns the change that undoes this one. Inverses are computed from
// pre-mutation state before the forward set is ever sent, so undo never needs
// to consult the store.
func (c Change) Invert() (Change, error) {
	switch c.Type {
	case ChangeAssign:
		return Change{Type: ChangeUnassign, BookingIDs: c.BookingIDs, FromGuide: c.ToGuide}, nil
	case ChangeUnassign:
		return Change{Type: ChangeAssign, BookingIDs: c.BookingIDs, ToGuide: c.FromGuide}, nil
	case ChangeReassign:
		return Change{Type: ChangeReassign, BookingIDs: c.BookingIDs, FromGuide: c.ToGuide, ToGuide: c.FromGuide}, nil
	case ChangeTimeShift:
		return Change{Type: ChangeTimeShift, BookingIDs: c.BookingIDs, GuideID: c.GuideID, NewStart: c.PrevStart, PrevStart: c.NewStart}, nil
	default:
		return Change{}, fmt.Errorf("%w: %q", ErrUnknownChangeType, c.Type)
	}
}

// String renders the change for status lines and debug logs.
func (c Change) String() string {
	ids := strings.Join(c.BookingIDs, ",")
	switch c.Type {
	case ChangeAssign:
		return fmt.Sprintf("assign %s -> %s", ids, c.ToGuide)
	case ChangeUnassign:
		return fmt.Sprintf("unassign %s from %s", ids, c.FromGuide)
	case ChangeReassign:
		return fmt.Sprintf("reassign %s %s -> %s", ids, c.FromGuide, c.ToGuide)
	case ChangeTimeShift:
		return fmt.Sprintf("shift %s on %s to %s", ids, c.GuideID, c.NewStart)
	default:
		return fmt.Sprintf("unknown(%s)", c.Type)
	}
}

// InvertAll returns the inverse change-set: each change inverted, in reverse
// order, so replaying it unwinds the forward set step by step.
func InvertAll(forward []Change) ([]Change, error) {
	inverse := make([]Change, 0, len(forward))
	for i := len(forward) - 1; i >= 0; i-- {
		inv, err := forward[i].Invert()
		if err != nil {
			return nil, err
		}
		inverse = append(inverse, inv)
	}
	return inverse, nil
}

// AssignChanges plans moving an unassigned booking onto a guide at the given
// time. Returns the forward change-set; the inverse comes from InvertAll.
func AssignChanges(b *Booking, toGuide, targetTime string) []Change {
	changes := []Change{{Type: ChangeAssign, BookingIDs: []string{b.ID}, ToGuide: toGuide}}
	if targetTime != b.PickupTime {
		changes = append(changes, Change{
			Type:       ChangeTimeShift,
			BookingIDs: []string{b.ID},
			GuideID:    toGuide,
			NewStart:   targetTime,
			PrevStart:  b.PickupTime,
		})
	}
	return changes
}

// ReassignChanges plans moving a booking from one guide to another.
func ReassignChanges(b *Booking, fromGuide, toGuide, targetTime string) []Change {
	changes := []Change{{Type: ChangeReassign, BookingIDs: []string{b.ID}, FromGuide: fromGuide, ToGuide: toGuide}}
	if targetTime != b.PickupTime {
		changes = append(changes, Change{
			Type:       ChangeTimeShift,
			BookingIDs: []string{b.ID},
			GuideID:    toGuide,
			NewStart:   targetTime,
			PrevStart:  b.PickupTime,
		})
	}
	return changes
}

// TimeShiftChanges plans moving a booking to a new pickup time on its own
// guide.
func TimeShiftChanges(b *Booking, guideID, targetTime string) []Change {
	return []Change{{
		Type:       ChangeTimeShift,
		BookingIDs: []string{b.ID},
		GuideID:    guideID,
		NewStart:   targetTime,
		PrevStart:  b.PickupTime,
	}}
}

// GroupAssignChanges plans moving several pool bookings onto a guide in one
// operation, e.g. a whole unassigned run. Each booking gets its own assign
// primitive so the inverse restores them individually.
func GroupAssignChanges(bookings []*Booking, toGuide, targetTime string) []Change {
	var changes []Change
	for _, b := range bookings {
		changes = append(changes, AssignChanges(b, toGuide, targetTime)...)
	}
	return changes
}
