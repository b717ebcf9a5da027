// Package board holds the stateful editing core of the dispatch board: the
// drag session state machine and the undo/redo operation log. Both are
// independent of any input or rendering layer so they can be driven by
// synthetic transitions in tests.
package board

import (
	"errors"
	"fmt"

	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub000/internal/timeline"
)

// DragSession errors.
var (
	ErrDragActive      = errors.New("a drag is already active")
	ErrNoDrag          = errors.New("no drag in progress")
	ErrNoTarget        = errors.New("no drop target set")
	ErrDropDenied      = errors.New("drop denied")
	ErrNothingToCommit = errors.New("drop changes nothing")
)

// DragState is the transient record of what is being dragged and from where.
// Exactly one may exist per session; starting a second drag is a caller bug.
type DragState struct {
	Booking *dispatch.Booking
	Group   []*dispatch.Booking // extra pool members moved together, if any
	Source  *string             // source guide id, nil for the unassigned pool
}

// Target is the hovered drop position plus its live validation.
type Target struct {
	Guide      *dispatch.Guide
	Time       string // snapped "HH:MM"
	Validation dispatch.DropValidation
}

// IntentKind classifies a committed drop by source/target comparison.
type IntentKind string

const (
	IntentAssign      IntentKind = "assign"
	IntentTimeShift   IntentKind = "time-shift"
	IntentReassign    IntentKind = "reassign"
	IntentGroupAssign IntentKind = "group-assign"
)

// Intent is the mutation a drop asks for. The session hands it to the
// operation log; it never talks to the remote boundary itself.
type Intent struct {
	Kind        IntentKind
	Forward     []dispatch.Change
	Description string

	// Overridden marks a capacity override; Projected keeps the projected
	// overutilization on record for audit.
	Overridden bool
	Projected  int
}

// DragSession mediates start/move/drop/cancel for the board. It is idle or
// dragging; a second start while dragging fails loudly.
type DragSession struct {
	window timeline.Window
	snap   int

	state  *DragState
	target *Target
}

// NewDragSession creates an idle session over the configured day window.
func NewDragSession(window timeline.Window, snapMin int) *DragSession {
	return &DragSession{window: window, snap: snapMin}
}

// Active returns true while a drag is in progress.
func (s *DragSession) Active() bool {
	return s.state != nil
}

// State returns the current drag state, nil when idle.
func (s *DragSession) State() *DragState {
	return s.state
}

// Target returns the current drop target, nil until the first UpdateTarget.
func (s *DragSession) Target() *Target {
	return s.target
}

// Start picks up a booking. source is the guide the booking came from, nil
// for the unassigned pool.
func (s *DragSession) Start(b *dispatch.Booking, source *string) error {
	if s.state != nil {
		return ErrDragActive
	}
	if b == nil {
		return dispatch.ErrBookingNotFound
	}
	s.state = &DragState{Booking: b, Source: source}
	s.target = nil
	return nil
}

// StartGroup picks up a whole pool run: the first booking leads, the rest
// move with it. All members must be unassigned.
func (s *DragSession) StartGroup(bookings []*dispatch.Booking) error {
	if s.state != nil {
		return ErrDragActive
	}
	if len(bookings) == 0 {
		return dispatch.ErrBookingNotFound
	}
	s.state = &DragState{Booking: bookings[0], Group: bookings[1:]}
	s.target = nil
	return nil
}

// UpdateTarget recomputes the drop target from a pointer position over a
// guide lane: the offset is snapped and clamped into the day window, then the
// drop validator runs against the lane's current runs. Returns the fresh
// validation for presentation.
func (s *DragSession) UpdateTarget(guide *dispatch.Guide, runs []dispatch.TourRun, offset, unitMin int) (dispatch.DropValidation, error) {
	if s.state == nil {
		return dispatch.DropValidation{}, ErrNoDrag
	}

	b := s.state.Booking
	at := s.window.PositionToTime(offset, unitMin, s.snap, b.DurationMin)
	v := dispatch.ValidateDrop(dispatch.DropQuery{
		Runs:       runs,
		Booking:    b,
		Group:      s.state.Group,
		TargetTime: at,
		Capacity:   guide.Capacity,
		Outsourced: guide.Outsourced,
	})

	s.target = &Target{Guide: guide, Time: at, Validation: v}
	return v, nil
}

// RetargetTime moves the target time without changing the hovered guide.
func (s *DragSession) RetargetTime(runs []dispatch.TourRun, offset, unitMin int) (dispatch.DropValidation, error) {
	if s.state == nil {
		return dispatch.DropValidation{}, ErrNoDrag
	}
	if s.target == nil {
		return dispatch.DropValidation{}, ErrNoTarget
	}
	return s.UpdateTarget(s.target.Guide, runs, offset, unitMin)
}

// Cancel discards the drag with no effect.
func (s *DragSession) Cancel() {
	s.state = nil
	s.target = nil
}

// Drop commits the drag. The session always returns to idle; on a denial
// nothing is recorded and ErrDropDenied is returned. override carries only a
// capacity_exceeded denial past validation; exclusivity denials are
// structural and stay denied.
func (s *DragSession) Drop(override bool) (Intent, error) {
	if s.state == nil {
		return Intent{}, ErrNoDrag
	}
	state, target := s.state, s.target
	s.state = nil
	s.target = nil

	if target == nil {
		return Intent{}, ErrNoTarget
	}

	v := target.Validation
	overridden := false
	if !v.Allowed {
		if !override || !v.Reason.Overridable() {
			return Intent{}, fmt.Errorf("%w: %s", ErrDropDenied, v.Message)
		}
		overridden = true
	}

	return buildIntent(state, target, overridden, v.Projected)
}

func buildIntent(state *DragState, target *Target, overridden bool, projected int) (Intent, error) {
	b := state.Booking
	guide := target.Guide
	at := target.Time

	switch {
	case len(state.Group) > 0:
		all := append([]*dispatch.Booking{b}, state.Group...)
		return Intent{
			Kind:        IntentGroupAssign,
			Forward:     dispatch.GroupAssignChanges(all, guide.ID, at),
			Description: fmt.Sprintf("Assign %d bookings to %s at %s", len(all), guide.Name, at),
			Overridden:  overridden,
			Projected:   projected,
		}, nil

	case state.Source == nil:
		return Intent{
			Kind:        IntentAssign,
			Forward:     dispatch.AssignChanges(b, guide.ID, at),
			Description: fmt.Sprintf("Assign %s to %s at %s", b.CustomerName, guide.Name, at),
			Overridden:  overridden,
			Projected:   projected,
		}, nil

	case *state.Source == guide.ID:
		if at == b.PickupTime {
			return Intent{}, ErrNothingToCommit
		}
		return Intent{
			Kind:        IntentTimeShift,
			Forward:     dispatch.TimeShiftChanges(b, guide.ID, at),
			Description: fmt.Sprintf("Shift %s to %s", b.CustomerName, at),
			Overridden:  overridden,
			Projected:   projected,
		}, nil

	default:
		return Intent{
			Kind:        IntentReassign,
			Forward:     dispatch.ReassignChanges(b, *state.Source, guide.ID, at),
			Description: fmt.Sprintf("Reassign %s to %s at %s", b.CustomerName, guide.Name, at),
			Overridden:  overridden,
			Projected:   projected,
		}, nil
	}
}
