package dispatch

import (
	"context"
	"strings"
	"time"
)

// BatchResult reports the outcome of a batch mutation. The boundary is
// all-or-nothing: a rejected batch applies nothing and reports every change
// as failed.
type BatchResult struct {
	Success bool
	Applied int
	Failed  int
}

// Service is the remote collaborator behind the board: the system of record
// for bookings and guides. The core only ever talks to this interface; the
// shipped implementation is a SQLite store.
type Service interface {
	// GetDispatch returns the read projection for one day.
	GetDispatch(ctx context.Context, date time.Time) (*DaySheet, error)

	// BatchApplyChanges applies a change-set atomically.
	// A failed batch leaves the store untouched.
	BatchApplyChanges(ctx context.Context, date time.Time, changes []Change) (BatchResult, error)

	// AddOutsourcedGuide staffs a run with an external guide: creates the
	// outsourced guide row and reassigns the run's bookings to it.
	AddOutsourcedGuide(ctx context.Context, date time.Time, runKey, name, contact string) (*Guide, error)

	// Close releases any resources held by the service.
	Close() error
}

// DaySheet is the read projection of one dispatch day, refreshed from the
// Service after every committed mutation.
type DaySheet struct {
	Date     time.Time
	Guides   []*Guide
	Bookings []*Booking
}

// Guide returns the guide with the given id, or nil.
func (d *DaySheet) Guide(id string) *Guide {
	for _, g := range d.Guides {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// Booking returns the booking with the given id, or nil.
func (d *DaySheet) Booking(id string) *Booking {
	for _, b := range d.Bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// BookingsFor returns the bookings assigned to one guide.
func (d *DaySheet) BookingsFor(guideID string) []*Booking {
	var out []*Booking
	for _, b := range d.Bookings {
		if b.GuideID != nil && *b.GuideID == guideID {
			out = append(out, b)
		}
	}
	return out
}

// Pool returns the unassigned bookings.
func (d *DaySheet) Pool() []*Booking {
	var out []*Booking
	for _, b := range d.Bookings {
		if b.GuideID == nil {
			out = append(out, b)
		}
	}
	return out
}

// RunsFor recomputes the tour runs on one guide's lane.
func (d *DaySheet) RunsFor(guideID string) []TourRun {
	return BuildRuns(guideID, d.BookingsFor(guideID))
}

// PoolRuns recomputes the tour runs of the unassigned pool.
func (d *DaySheet) PoolRuns() []TourRun {
	return BuildRuns("", d.Pool())
}

// Run finds a run by key, searching every guide lane and the pool.
func (d *DaySheet) Run(key string) *TourRun {
	_, _, guideID, err := ParseRunKey(key)
	if err != nil {
		return nil
	}
	// Charter keys carry a "#bookingID" suffix on the guide part.
	if i := strings.Index(guideID, "#"); i >= 0 {
		guideID = guideID[:i]
	}
	var runs []TourRun
	if guideID == "" {
		runs = d.PoolRuns()
	} else {
		runs = d.RunsFor(guideID)
	}
	for i := range runs {
		if runs[i].Key == key {
			return &runs[i]
		}
	}
	return nil
}
