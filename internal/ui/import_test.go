package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/saimali7/Tour-CRM-sub000/internal/store"
)

func newImportStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(t.TempDir() + "/import.db")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestImportGuides(t *testing.T) {
	s := newImportStore(t)
	csvData := `id,name,capacity,contact
g-ana,Ana,8,+351911000111
g-bo,Bo,4,
`

	count, err := importGuides(context.Background(), s, strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("importGuides: %v", err)
	}
	if count != 2 {
		t.Fatalf("imported %d guides, want 2", count)
	}

	sheet, err := s.GetDispatch(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("GetDispatch: %v", err)
	}
	g := sheet.Guide("g-ana")
	if g == nil || g.Name != "Ana" || g.Capacity != 8 {
		t.Fatalf("unexpected guide %+v", g)
	}
}

func TestImportGuides_MissingColumn(t *testing.T) {
	s := newImportStore(t)

	_, err := importGuides(context.Background(), s, strings.NewReader("id,name\ng1,Ana\n"))
	if err == nil || !strings.Contains(err.Error(), "capacity") {
		t.Fatalf("err = %v, want missing capacity column", err)
	}
}

func TestImportBookings(t *testing.T) {
	s := newImportStore(t)
	date := time.Date(2026, 7, 14, 0, 0, 0, 0, time.Local)

	if _, err := importGuides(context.Background(), s, strings.NewReader("id,name,capacity\ng-ana,Ana,8\n")); err != nil {
		t.Fatalf("seeding guide: %v", err)
	}

	csvData := `id,customer,adults,children,infants,pickup_time,pickup_location,pickup_zone,tour_id,tour_name,duration_min,mode,guide_id
bk-1,Silva,2,1,0,09:00,Hotel Mar,east,caves,Caves,120,shared,g-ana
bk-2,Costa,4,0,1,09:00,Marina,west,caves,Caves,120,,
`

	count, err := importBookings(context.Background(), s, date, strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("importBookings: %v", err)
	}
	if count != 2 {
		t.Fatalf("imported %d bookings, want 2", count)
	}

	sheet, err := s.GetDispatch(context.Background(), date)
	if err != nil {
		t.Fatalf("GetDispatch: %v", err)
	}

	b1 := sheet.Booking("bk-1")
	if b1 == nil || b1.GuideID == nil || *b1.GuideID != "g-ana" {
		t.Fatalf("bk-1 not assigned to g-ana: %+v", b1)
	}
	if b1.Guests() != 3 {
		t.Fatalf("bk-1 guests = %d, want 3", b1.Guests())
	}

	b2 := sheet.Booking("bk-2")
	if b2 == nil || b2.GuideID != nil {
		t.Fatalf("bk-2 should sit in the pool: %+v", b2)
	}
	if b2.Infants != 1 {
		t.Fatalf("bk-2 infants = %d, want 1", b2.Infants)
	}
}

func TestImportBookings_BadMode(t *testing.T) {
	s := newImportStore(t)
	date := time.Date(2026, 7, 14, 0, 0, 0, 0, time.Local)

	csvData := "id,customer,adults,pickup_time,tour_id,mode\nbk-1,Silva,2,09:00,caves,private\n"
	count, err := importBookings(context.Background(), s, date, strings.NewReader(csvData))
	if err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
	if count != 0 {
		t.Fatalf("imported %d bookings before the error, want 0", count)
	}
}
