package dispatch

import (
	"strings"
	"testing"
)

func TestValidateDrop_EmptyLane(t *testing.T) {
	b := shared("b1", "sunset", "17:00", 4)

	v := ValidateDrop(DropQuery{Booking: b, TargetTime: "17:00", Capacity: 8})
	if !v.Allowed {
		t.Fatalf("drop on empty lane should be allowed: %s", v.Message)
	}
	if v.Projected != 4 {
		t.Errorf("Projected: got %d, want 4", v.Projected)
	}
}

func TestValidateDrop_GroupCountsEveryMember(t *testing.T) {
	lead := shared("b1", "sunset", "17:00", 4)
	rest := []*Booking{shared("b2", "sunset", "17:00", 5)}

	// 4+5 seats onto an empty 6-seat vehicle.
	v := ValidateDrop(DropQuery{Booking: lead, Group: rest, TargetTime: "17:00", Capacity: 6})
	if v.Allowed {
		t.Fatal("a group exceeding capacity must be denied")
	}
	if v.Reason != ReasonCapacityExceeded {
		t.Errorf("Reason: got %s, want %s", v.Reason, ReasonCapacityExceeded)
	}
	if v.Projected != 9 {
		t.Errorf("Projected: got %d, want 9", v.Projected)
	}

	// The same group fits a 10-seat vehicle.
	v = ValidateDrop(DropQuery{Booking: lead, Group: rest, TargetTime: "17:00", Capacity: 10})
	if !v.Allowed {
		t.Fatalf("group within capacity should be allowed: %s", v.Message)
	}
	if v.Projected != 9 {
		t.Errorf("Projected: got %d, want 9", v.Projected)
	}
}

func TestValidateDrop_GroupAddsToOccupiedLane(t *testing.T) {
	runs := BuildRuns("g1", []*Booking{shared("b0", "sunset", "17:00", 3)})
	lead := shared("b1", "sunset", "17:00", 2)
	rest := []*Booking{shared("b2", "sunset", "17:00", 2)}

	v := ValidateDrop(DropQuery{Runs: runs, Booking: lead, Group: rest, TargetTime: "17:00", Capacity: 6})
	if v.Allowed {
		t.Fatal("3 seated plus a group of 4 must exceed 6 seats")
	}
	if v.Projected != 7 {
		t.Errorf("Projected: got %d, want 7", v.Projected)
	}
}

func TestValidateDrop_CharterOccupied(t *testing.T) {
	runs := BuildRuns("g1", []*Booking{charter("c1", "vip", "16:00", 4)})
	b := shared("b1", "sunset", "17:00", 2)

	v := ValidateDrop(DropQuery{Runs: runs, Booking: b, TargetTime: "17:00", Capacity: 8})
	if v.Allowed {
		t.Fatal("drop onto a charter window must be denied")
	}
	if v.Reason != ReasonCharterOccupied {
		t.Errorf("Reason: got %s, want %s", v.Reason, ReasonCharterOccupied)
	}
	if v.Reason.Overridable() {
		t.Error("charter_occupied must not be overridable")
	}
}

func TestValidateDrop_CharterConflict(t *testing.T) {
	runs := BuildRuns("g1", []*Booking{shared("b1", "sunset", "17:00", 2)})
	c := charter("c1", "vip", "17:00", 4)

	v := ValidateDrop(DropQuery{Runs: runs, Booking: c, TargetTime: "17:00", Capacity: 8})
	if v.Allowed {
		t.Fatal("dropping a charter onto an occupied window must be denied")
	}
	if v.Reason != ReasonCharterConflict {
		t.Errorf("Reason: got %s, want %s", v.Reason, ReasonCharterConflict)
	}
}

func TestValidateDrop_DifferentTour(t *testing.T) {
	runs := BuildRuns("g1", []*Booking{shared("b1", "caves", "17:00", 2)})
	b := shared("b2", "sunset", "17:00", 2)

	v := ValidateDrop(DropQuery{Runs: runs, Booking: b, TargetTime: "17:00", Capacity: 8})
	if v.Allowed {
		t.Fatal("mixing itineraries on one vehicle must be denied")
	}
	if v.Reason != ReasonDifferentTour {
		t.Errorf("Reason: got %s, want %s", v.Reason, ReasonDifferentTour)
	}
}

func TestValidateDrop_CapacityExceeded(t *testing.T) {
	runs := BuildRuns("g1", []*Booking{
		shared("b1", "sunset", "17:00", 3),
		shared("b2", "sunset", "17:00", 3),
	})
	b := shared("b3", "sunset", "17:00", 3)

	v := ValidateDrop(DropQuery{Runs: runs, Booking: b, TargetTime: "17:00", Capacity: 8})
	if v.Allowed {
		t.Fatal("9 guests into an 8-seat vehicle must be denied")
	}
	if v.Reason != ReasonCapacityExceeded {
		t.Errorf("Reason: got %s, want %s", v.Reason, ReasonCapacityExceeded)
	}
	if v.Projected != 9 {
		t.Errorf("Projected: got %d, want 9", v.Projected)
	}
	if !v.Reason.Overridable() {
		t.Error("capacity_exceeded must be overridable")
	}
	if !strings.Contains(v.Message, "8") {
		t.Errorf("message should name the capacity: %q", v.Message)
	}
}

func TestValidateDrop_CapacityExactFit(t *testing.T) {
	runs := BuildRuns("g1", []*Booking{shared("b1", "sunset", "17:00", 5)})
	b := shared("b2", "sunset", "17:00", 3)

	v := ValidateDrop(DropQuery{Runs: runs, Booking: b, TargetTime: "17:00", Capacity: 8})
	if !v.Allowed {
		t.Fatalf("exact capacity fit should be allowed: %s", v.Message)
	}
	if v.Projected != 8 {
		t.Errorf("Projected: got %d, want 8", v.Projected)
	}
}

func TestValidateDrop_ExclusivityBeforeCapacity(t *testing.T) {
	// The target both holds a charter and would be over capacity. The
	// structural reason must win because an override cannot fix it.
	runs := BuildRuns("g1", []*Booking{charter("c1", "vip", "17:00", 8)})
	b := shared("b1", "sunset", "17:00", 4)

	v := ValidateDrop(DropQuery{Runs: runs, Booking: b, TargetTime: "17:00", Capacity: 8})
	if v.Reason != ReasonCharterOccupied {
		t.Errorf("Reason: got %s, want %s", v.Reason, ReasonCharterOccupied)
	}
}

func TestValidateDrop_NoOpOnOwnRun(t *testing.T) {
	b := shared("b1", "sunset", "17:00", 10)
	runs := BuildRuns("g1", []*Booking{b})

	// Dropping the only member of a run back onto its own window is a no-op
	// even when the guests alone would exceed capacity.
	v := ValidateDrop(DropQuery{Runs: runs, Booking: b, TargetTime: "17:30", Capacity: 4})
	if !v.Allowed {
		t.Fatalf("repositioning within own solo run should be allowed: %s", v.Message)
	}
}

func TestValidateDrop_OwnGuestsNotDoubleCounted(t *testing.T) {
	// b1 shares a run with b2; shifting b1 within the overlapping window must
	// not count b1's guests twice.
	b1 := shared("b1", "sunset", "17:00", 4)
	b2 := shared("b2", "sunset", "17:00", 4)
	runs := BuildRuns("g1", []*Booking{b1, b2})

	v := ValidateDrop(DropQuery{Runs: runs, Booking: b1, TargetTime: "17:15", Capacity: 8})
	if !v.Allowed {
		t.Fatalf("shift within capacity should be allowed: %s", v.Message)
	}
	if v.Projected != 8 {
		t.Errorf("Projected: got %d, want 8", v.Projected)
	}
}

func TestValidateDrop_DisjointTimesIgnored(t *testing.T) {
	runs := BuildRuns("g1", []*Booking{charter("c1", "vip", "08:00", 4)})
	b := shared("b1", "sunset", "17:00", 2)

	v := ValidateDrop(DropQuery{Runs: runs, Booking: b, TargetTime: "17:00", Capacity: 8})
	if !v.Allowed {
		t.Fatalf("non-overlapping charter must not block: %s", v.Message)
	}
}

func TestValidateDrop_AdjacentRunsDoNotConflict(t *testing.T) {
	runs := BuildRuns("g1", []*Booking{charter("c1", "vip", "08:00", 4)}) // ends 10:00
	b := shared("b1", "sunset", "10:00", 2)

	v := ValidateDrop(DropQuery{Runs: runs, Booking: b, TargetTime: "10:00", Capacity: 8})
	if !v.Allowed {
		t.Fatalf("back-to-back runs must not conflict: %s", v.Message)
	}
}

func TestValidateDrop_OutsourcedBypassesAll(t *testing.T) {
	runs := BuildRuns("ext1", []*Booking{charter("c1", "vip", "17:00", 8)})
	b := shared("b1", "sunset", "17:00", 10)

	v := ValidateDrop(DropQuery{Runs: runs, Booking: b, TargetTime: "17:00", Capacity: 0, Outsourced: true})
	if !v.Allowed {
		t.Fatalf("outsourced lanes accept everything: %s", v.Message)
	}
}

func TestValidateDrop_CapacityMonotonicity(t *testing.T) {
	// If a party fits, any smaller party also fits at the same target.
	runs := BuildRuns("g1", []*Booking{shared("b1", "sunset", "17:00", 4)})

	big := shared("b2", "sunset", "17:00", 4)
	if v := ValidateDrop(DropQuery{Runs: runs, Booking: big, TargetTime: "17:00", Capacity: 8}); !v.Allowed {
		t.Fatalf("party of 4 should fit: %s", v.Message)
	}
	small := shared("b3", "sunset", "17:00", 2)
	if v := ValidateDrop(DropQuery{Runs: runs, Booking: small, TargetTime: "17:00", Capacity: 8}); !v.Allowed {
		t.Fatalf("party of 2 should fit when party of 4 does: %s", v.Message)
	}
}

func TestValidateDrop_InfantsDoNotTakeSeats(t *testing.T) {
	b := shared("b1", "sunset", "17:00", 4)
	b.Infants = 3

	v := ValidateDrop(DropQuery{Booking: b, TargetTime: "17:00", Capacity: 4})
	if !v.Allowed {
		t.Fatalf("infants ride on laps: %s", v.Message)
	}
	if v.Projected != 4 {
		t.Errorf("Projected: got %d, want 4", v.Projected)
	}
}
