package dispatch

import (
	"fmt"

	"github.com/saimali7/Tour-CRM-sub000/internal/timeline"
)

// DropReason codes a drop denial. Exclusivity reasons are structurally
// unfixable; capacity_exceeded is the one a dispatcher may override.
type DropReason string

const (
	ReasonCharterOccupied  DropReason = "charter_occupied"
	ReasonCharterConflict  DropReason = "charter_conflict"
	ReasonDifferentTour    DropReason = "different_tour"
	ReasonCapacityExceeded DropReason = "capacity_exceeded"
)

// Overridable returns true if an explicit dispatcher override may carry the
// drop past this denial.
func (r DropReason) Overridable() bool {
	return r == ReasonCapacityExceeded
}

// DropValidation is the transient result of evaluating a proposed drop.
// Recomputed on every target change while dragging; never persisted.
type DropValidation struct {
	Allowed bool
	Reason  DropReason
	Message string

	// Projected is the guest total in the overlapping window after the drop.
	// Reported on capacity_exceeded so a caller can offer an override, and
	// recorded for audit when the override is taken.
	Projected int
}

// DropQuery carries everything the validator needs: the target guide's
// current runs, the dragged booking, the candidate start time, and the
// guide's vehicle limits. Group holds the extra members moving with the
// booking when a whole pool run is dragged; their seats count toward the
// capacity projection.
type DropQuery struct {
	Runs       []TourRun
	Booking    *Booking
	Group      []*Booking
	TargetTime string // "HH:MM"
	Capacity   int
	Outsourced bool
}

// ValidateDrop decides whether dropping the booking at the target time on
// the target guide is legal. First match wins; exclusivity conflicts are
// reported before capacity conflicts because raising capacity cannot fix
// them.
func ValidateDrop(q DropQuery) DropValidation {
	// Outsourced guide rows are staffed out-of-band and sit outside the
	// capacity/exclusivity rules.
	if q.Outsourced {
		return DropValidation{Allowed: true}
	}

	b := q.Booking
	end := timeline.AddMinutes(q.TargetTime, b.DurationMin)

	var overlapping []TourRun
	ownOnly := true
	for _, r := range q.Runs {
		if !r.Overlaps(q.TargetTime, end) {
			continue
		}
		overlapping = append(overlapping, r)
		if !(r.Contains(b.ID) && r.Solo()) {
			ownOnly = false
		}
	}

	// Dropping a booking back onto itself is a no-op.
	if len(overlapping) > 0 && ownOnly {
		return DropValidation{Allowed: true}
	}

	for _, r := range overlapping {
		if r.Mode == ModeCharter && !r.Contains(b.ID) {
			return DropValidation{
				Allowed: false,
				Reason:  ReasonCharterOccupied,
				Message: fmt.Sprintf("guide has a charter %s–%s; the vehicle is exclusive", r.Start, r.End),
			}
		}
	}

	if b.IsCharter() {
		for _, r := range overlapping {
			if !r.Contains(b.ID) {
				return DropValidation{
					Allowed: false,
					Reason:  ReasonCharterConflict,
					Message: fmt.Sprintf("charter needs the vehicle to itself; %s overlaps %s–%s", r.TourID, r.Start, r.End),
				}
			}
		}
	}

	if b.Mode == ModeShared {
		for _, r := range overlapping {
			if !r.Contains(b.ID) && r.TourID != b.TourID {
				return DropValidation{
					Allowed: false,
					Reason:  ReasonDifferentTour,
					Message: fmt.Sprintf("guide is running %s at this time; one vehicle keeps one itinerary", r.TourID),
				}
			}
		}
	}

	projected := b.Guests()
	for _, gb := range q.Group {
		if gb != nil {
			projected += gb.Guests()
		}
	}
	for _, r := range overlapping {
		projected += r.Guests
		if r.Contains(b.ID) {
			// Already on this lane: don't count the booking twice.
			projected -= b.Guests()
		}
	}
	if projected > q.Capacity {
		return DropValidation{
			Allowed:   false,
			Reason:    ReasonCapacityExceeded,
			Message:   fmt.Sprintf("%d guests would exceed the vehicle capacity of %d", projected, q.Capacity),
			Projected: projected,
		}
	}

	return DropValidation{Allowed: true, Projected: projected}
}
