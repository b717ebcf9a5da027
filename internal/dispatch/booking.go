// Package dispatch defines the core domain types and decision logic for the
// dispatch board: bookings, guides, tour runs, and drop validation.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/saimali7/Tour-CRM-sub000/internal/timeline"
)

// Validation errors.
var (
	ErrEmptyBookingID   = errors.New("booking id cannot be empty")
	ErrEmptyTourID      = errors.New("tour id cannot be empty")
	ErrInvalidMode      = errors.New("experience mode must be 'shared' or 'charter'")
	ErrInvalidDuration  = errors.New("tour duration must be positive")
	ErrNoGuests         = errors.New("booking must carry at least one guest")
	ErrNegativeGuests   = errors.New("guest counts cannot be negative")
	ErrInvalidTimeRange = errors.New("pickup time must be in HH:MM format")
)

// Domain errors.
var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrGuideNotFound   = errors.New("guide not found")
)

// ExperienceMode distinguishes shared tours from exclusive charters.
type ExperienceMode string

const (
	ModeShared  ExperienceMode = "shared"
	ModeCharter ExperienceMode = "charter"
)

// Valid returns true if the mode is a known value.
func (m ExperienceMode) Valid() bool {
	switch m {
	case ModeShared, ModeCharter:
		return true
	default:
		return false
	}
}

// ParseMode converts a string to an ExperienceMode.
func ParseMode(s string) (ExperienceMode, error) {
	switch s {
	case "shared":
		return ModeShared, nil
	case "charter":
		return ModeCharter, nil
	default:
		return "", ErrInvalidMode
	}
}

// Booking is one party to be picked up and toured. The guide assignment is
// the only mutable aspect; everything else is owned by the system of record.
type Booking struct {
	ID             string
	CustomerName   string
	Adults         int
	Children       int
	Infants        int
	PickupLocation string
	PickupZone     string
	PickupTime     string // "HH:MM"
	TourID         string
	TourName       string
	DurationMin    int
	Mode           ExperienceMode
	GuideID        *string // nil means the unassigned pool
}

// Validate checks the booking's immutable fields.
func (b *Booking) Validate() error {
	if b.ID == "" {
		return ErrEmptyBookingID
	}
	if b.TourID == "" {
		return ErrEmptyTourID
	}
	if !b.Mode.Valid() {
		return ErrInvalidMode
	}
	if b.DurationMin <= 0 {
		return ErrInvalidDuration
	}
	if b.Adults < 0 || b.Children < 0 || b.Infants < 0 {
		return ErrNegativeGuests
	}
	if b.Guests() == 0 {
		return ErrNoGuests
	}
	if _, err := timeline.ParseClock(b.PickupTime); err != nil {
		return ErrInvalidTimeRange
	}
	return nil
}

// Guests returns the number of vehicle seats the booking consumes.
// Infants ride on laps and do not take a seat.
func (b *Booking) Guests() int {
	return b.Adults + b.Children
}

// PartySize returns the full headcount including infants, for manifests.
func (b *Booking) PartySize() int {
	return b.Adults + b.Children + b.Infants
}

// EndTime returns the pickup time plus the tour duration.
func (b *Booking) EndTime() string {
	return timeline.AddMinutes(b.PickupTime, b.DurationMin)
}

// Assigned returns true if the booking is on a guide's lane.
func (b *Booking) Assigned() bool {
	return b.GuideID != nil
}

// IsCharter returns true for exclusive-vehicle bookings.
func (b *Booking) IsCharter() bool {
	return b.Mode == ModeCharter
}

// Label is a short human-readable handle used in status messages.
func (b *Booking) Label() string {
	return fmt.Sprintf("%s (%s, %d guests)", b.CustomerName, b.PickupTime, b.Guests())
}
