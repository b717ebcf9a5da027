package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/saimali7/Tour-CRM-sub000/internal/board"
	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub000/internal/store"
	"github.com/saimali7/Tour-CRM-sub000/internal/timeline"
)

var tripDate = time.Date(2026, 7, 14, 0, 0, 0, 0, time.Local)

// openStore creates a fresh store for each test with automatic cleanup.
func openStore(t *testing.T) *store.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedGuide(t *testing.T, s *store.Store, id, name string, capacity int) {
	t.Helper()
	g := &dispatch.Guide{ID: id, Name: name, Capacity: capacity}
	if err := s.CreateGuide(context.Background(), g); err != nil {
		t.Fatalf("failed to seed guide %s: %v", id, err)
	}
}

func seedBooking(t *testing.T, s *store.Store, id, tourID, pickup string, adults int, guideID *string) {
	t.Helper()
	b := &dispatch.Booking{
		ID:           id,
		CustomerName: "Guest " + id,
		Adults:       adults,
		PickupTime:   pickup,
		TourID:       tourID,
		TourName:     tourID,
		DurationMin:  120,
		Mode:         dispatch.ModeShared,
		GuideID:      guideID,
	}
	if err := s.CreateBooking(context.Background(), tripDate, b); err != nil {
		t.Fatalf("failed to seed booking %s: %v", id, err)
	}
}

// boardWindow is the default operating day used by the board tests.
func boardWindow(t *testing.T) timeline.Window {
	t.Helper()
	w, err := timeline.NewWindow("07:00", "21:00")
	if err != nil {
		t.Fatalf("failed to build window: %v", err)
	}
	return w
}

// TestDragLifecycle walks the full path a drag takes in the running
// application: load the day from SQLite, lift a pool booking, hover a lane,
// drop, commit through the operation log, then undo and redo.
func TestDragLifecycle(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	seedGuide(t, s, "g-ana", "Ana", 8)
	seedBooking(t, s, "bk-1", "caves", "09:00", 2, nil)

	sheet, err := s.GetDispatch(ctx, tripDate)
	if err != nil {
		t.Fatalf("GetDispatch: %v", err)
	}
	if len(sheet.Pool()) != 1 {
		t.Fatalf("pool = %d bookings, want 1", len(sheet.Pool()))
	}

	session := board.NewDragSession(boardWindow(t), 15)
	log := board.NewOpLog(s, tripDate)

	if err := session.Start(sheet.Booking("bk-1"), nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	guide := sheet.Guide("g-ana")
	// Row 4 is the 09:00 slot with 30 minute rows.
	v, err := session.UpdateTarget(guide, sheet.RunsFor(guide.ID), 4, 30)
	if err != nil {
		t.Fatalf("UpdateTarget: %v", err)
	}
	if !v.Allowed {
		t.Fatalf("drop denied: %s", v.Message)
	}

	intent, err := session.Drop(false)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if _, err := log.Commit(ctx, intent); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	sheet, err = s.GetDispatch(ctx, tripDate)
	if err != nil {
		t.Fatalf("GetDispatch after commit: %v", err)
	}
	b := sheet.Booking("bk-1")
	if b.GuideID == nil || *b.GuideID != "g-ana" {
		t.Fatalf("bk-1 guide = %v, want g-ana", b.GuideID)
	}

	if _, err := log.Undo(ctx); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	sheet, _ = s.GetDispatch(ctx, tripDate)
	if sheet.Booking("bk-1").GuideID != nil {
		t.Fatal("undo did not return bk-1 to the pool")
	}

	if _, err := log.Redo(ctx); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	sheet, _ = s.GetDispatch(ctx, tripDate)
	if b := sheet.Booking("bk-1"); b.GuideID == nil || *b.GuideID != "g-ana" {
		t.Fatal("redo did not restore the assignment")
	}
}

// TestCapacityOverrideLifecycle drops a booking onto a full lane with the
// override taken and checks the projection survives into the operation log.
func TestCapacityOverrideLifecycle(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	seedGuide(t, s, "g-ana", "Ana", 8)
	full := "g-ana"
	seedBooking(t, s, "bk-full", "caves", "09:00", 8, &full)
	seedBooking(t, s, "bk-extra", "caves", "09:00", 3, nil)

	sheet, err := s.GetDispatch(ctx, tripDate)
	if err != nil {
		t.Fatalf("GetDispatch: %v", err)
	}

	session := board.NewDragSession(boardWindow(t), 15)
	log := board.NewOpLog(s, tripDate)

	if err := session.Start(sheet.Booking("bk-extra"), nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	guide := sheet.Guide("g-ana")
	v, err := session.UpdateTarget(guide, sheet.RunsFor(guide.ID), 4, 30)
	if err != nil {
		t.Fatalf("UpdateTarget: %v", err)
	}
	if v.Allowed || !v.Reason.Overridable() {
		t.Fatalf("validation = %+v, want overridable denial", v)
	}
	if v.Projected != 11 {
		t.Fatalf("projected = %d, want 11", v.Projected)
	}

	intent, err := session.Drop(true)
	if err != nil {
		t.Fatalf("Drop with override: %v", err)
	}
	op, err := log.Commit(ctx, intent)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if op.Projected != 11 {
		t.Fatalf("operation projected = %d, want 11", op.Projected)
	}

	sheet, _ = s.GetDispatch(ctx, tripDate)
	run := sheet.RunsFor("g-ana")
	if len(run) != 1 || run[0].Guests != 11 {
		t.Fatalf("runs after override = %+v, want one run of 11 guests", run)
	}
}

// TestOutsourceLifecycle moves a whole pool run onto a freshly created
// external guide and checks that its lane skips validation afterwards.
func TestOutsourceLifecycle(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	seedBooking(t, s, "bk-1", "sunset", "17:00", 2, nil)
	seedBooking(t, s, "bk-2", "sunset", "17:00", 4, nil)

	key := dispatch.RunKey("sunset", "17:00", "")
	g, err := s.AddOutsourcedGuide(ctx, tripDate, key, "Atlantic Boats", "+351911222333")
	if err != nil {
		t.Fatalf("AddOutsourcedGuide: %v", err)
	}
	if !g.Outsourced {
		t.Fatal("guide not flagged as outsourced")
	}

	sheet, err := s.GetDispatch(ctx, tripDate)
	if err != nil {
		t.Fatalf("GetDispatch: %v", err)
	}
	if len(sheet.Pool()) != 0 {
		t.Fatalf("pool = %d bookings after outsourcing, want 0", len(sheet.Pool()))
	}
	runs := sheet.RunsFor(g.ID)
	if len(runs) != 1 || runs[0].Guests != 6 {
		t.Fatalf("outsourced runs = %+v, want one run of 6 guests", runs)
	}

	// Anything may be dropped on the partner's lane; staffing it is the
	// partner's problem.
	v := dispatch.ValidateDrop(dispatch.DropQuery{
		Runs:       runs,
		Booking:    &dispatch.Booking{ID: "x", Adults: 40, PickupTime: "17:00", TourID: "sunset", DurationMin: 120, Mode: dispatch.ModeShared},
		TargetTime: "17:00",
		Capacity:   0,
		Outsourced: true,
	})
	if !v.Allowed {
		t.Fatalf("outsourced lane rejected a drop: %+v", v)
	}
}
