package dispatch

import (
	"sort"

	"github.com/saimali7/Tour-CRM-sub000/internal/timeline"
)

// TourRun is a derived grouping of bookings sharing (tourID, startTime) on
// one guide's lane. Runs have no lifecycle of their own; they are recomputed
// from bookings on every refresh.
type TourRun struct {
	Key        string
	TourID     string
	TourName   string
	GuideID    string // empty for the unassigned pool
	Start      string // "HH:MM"
	End        string // Start + tour duration
	Mode       ExperienceMode
	Guests     int
	BookingIDs []string
}

// Overlaps returns true if the run's time window overlaps [start, end).
func (r *TourRun) Overlaps(start, end string) bool {
	return timeline.Overlap(r.Start, r.End, start, end)
}

// Contains returns true if the booking id is a member of the run.
func (r *TourRun) Contains(bookingID string) bool {
	for _, id := range r.BookingIDs {
		if id == bookingID {
			return true
		}
	}
	return false
}

// Solo returns true if the run has exactly one member booking.
func (r *TourRun) Solo() bool {
	return len(r.BookingIDs) == 1
}

// BuildRuns groups the bookings assigned to one guide into tour runs.
// Shared bookings bucket by (tourID, startTime); every charter booking
// becomes its own singleton run, since each represents an exclusive vehicle.
//
// The function is pure and order-independent: the input is sorted by
// (pickup time, tour id, booking id) before bucketing, so identical booking
// sets always produce identical runs with identical member order.
func BuildRuns(guideID string, bookings []*Booking) []TourRun {
	sorted := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil {
			sorted = append(sorted, b)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.PickupTime != b.PickupTime {
			return a.PickupTime < b.PickupTime
		}
		if a.TourID != b.TourID {
			return a.TourID < b.TourID
		}
		return a.ID < b.ID
	})

	var runs []TourRun
	shared := make(map[string]int) // run key -> index into runs

	for _, b := range sorted {
		if b.Mode == ModeCharter {
			runs = append(runs, newRun(guideID, b))
			continue
		}

		key := RunKey(b.TourID, b.PickupTime, guideID)
		if idx, ok := shared[key]; ok {
			run := &runs[idx]
			run.Guests += b.Guests()
			run.BookingIDs = append(run.BookingIDs, b.ID)
			if end := b.EndTime(); end > run.End {
				run.End = end
			}
			continue
		}
		shared[key] = len(runs)
		runs = append(runs, newRun(guideID, b))
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Start != runs[j].Start {
			return runs[i].Start < runs[j].Start
		}
		if runs[i].TourID != runs[j].TourID {
			return runs[i].TourID < runs[j].TourID
		}
		return runs[i].Key < runs[j].Key
	})
	return runs
}

func newRun(guideID string, b *Booking) TourRun {
	key := RunKey(b.TourID, b.PickupTime, guideID)
	if b.Mode == ModeCharter {
		// Charter runs are never merged; key on the booking instead of the
		// tour so two charters for the same tour/time stay distinct.
		key = RunKey(b.TourID, b.PickupTime, guideID) + "#" + b.ID
	}
	return TourRun{
		Key:        key,
		TourID:     b.TourID,
		TourName:   b.TourName,
		GuideID:    guideID,
		Start:      b.PickupTime,
		End:        b.EndTime(),
		Mode:       b.Mode,
		Guests:     b.Guests(),
		BookingIDs: []string{b.ID},
	}
}

// GuestsAt sums the guests of all runs active at the given instant.
func GuestsAt(runs []TourRun, at string) int {
	total := 0
	for _, r := range runs {
		if r.Start <= at && at < r.End {
			total += r.Guests
		}
	}
	return total
}
