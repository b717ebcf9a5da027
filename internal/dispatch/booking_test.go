package dispatch

import (
	"errors"
	"testing"
)

func validBooking() *Booking {
	return &Booking{
		ID:           "b1",
		CustomerName: "Silva",
		Adults:       2,
		PickupTime:   "09:00",
		TourID:       "caves",
		TourName:     "Caves",
		DurationMin:  120,
		Mode:         ModeShared,
	}
}

func TestBookingValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Booking)
		wantErr error
	}{
		{"valid", func(b *Booking) {}, nil},
		{"empty id", func(b *Booking) { b.ID = "" }, ErrEmptyBookingID},
		{"empty tour", func(b *Booking) { b.TourID = "" }, ErrEmptyTourID},
		{"bad mode", func(b *Booking) { b.Mode = "private" }, ErrInvalidMode},
		{"zero duration", func(b *Booking) { b.DurationMin = 0 }, ErrInvalidDuration},
		{"negative adults", func(b *Booking) { b.Adults = -1 }, ErrNegativeGuests},
		{"no guests", func(b *Booking) { b.Adults, b.Children = 0, 0 }, ErrNoGuests},
		{"infants only", func(b *Booking) { b.Adults, b.Children, b.Infants = 0, 0, 2 }, ErrNoGuests},
		{"bad pickup time", func(b *Booking) { b.PickupTime = "27:00" }, ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			err := b.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookingSeatsAndHeadcount(t *testing.T) {
	b := validBooking()
	b.Children = 1
	b.Infants = 2

	if got := b.Guests(); got != 3 {
		t.Errorf("Guests() = %d, want 3 (infants ride on laps)", got)
	}
	if got := b.PartySize(); got != 5 {
		t.Errorf("PartySize() = %d, want 5", got)
	}
}

func TestBookingEndTime(t *testing.T) {
	b := validBooking()
	if got := b.EndTime(); got != "11:00" {
		t.Errorf("EndTime() = %s, want 11:00", got)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("charter"); err != nil || m != ModeCharter {
		t.Errorf("ParseMode(charter) = %v, %v", m, err)
	}
	if _, err := ParseMode("vip"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("ParseMode(vip) err = %v, want ErrInvalidMode", err)
	}
}

func TestParseRunKeyErrors(t *testing.T) {
	for _, key := range []string{"", "caves", "caves@09:00", "@09:00@g1", "caves@@g1"} {
		if _, _, _, err := ParseRunKey(key); !errors.Is(err, ErrBadRunKey) {
			t.Errorf("ParseRunKey(%q) err = %v, want ErrBadRunKey", key, err)
		}
	}
}
