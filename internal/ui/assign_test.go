package ui

import (
	"testing"

	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
)

func TestAssignChangeSet(t *testing.T) {
	g1 := "g1"
	pool := &dispatch.Booking{ID: "b1", PickupTime: "09:00"}
	onLane := &dispatch.Booking{ID: "b2", PickupTime: "09:00", GuideID: &g1}

	tests := []struct {
		name       string
		booking    *dispatch.Booking
		guideID    string
		targetTime string
		wantTypes  []dispatch.ChangeType
	}{
		{
			name:       "pool booking assigns",
			booking:    pool,
			guideID:    "g1",
			targetTime: "09:00",
			wantTypes:  []dispatch.ChangeType{dispatch.ChangeAssign},
		},
		{
			name:       "same lane same time is a no-op",
			booking:    onLane,
			guideID:    "g1",
			targetTime: "09:00",
			wantTypes:  nil,
		},
		{
			name:       "same lane new time shifts",
			booking:    onLane,
			guideID:    "g1",
			targetTime: "10:30",
			wantTypes:  []dispatch.ChangeType{dispatch.ChangeTimeShift},
		},
		{
			name:       "other lane reassigns",
			booking:    onLane,
			guideID:    "g2",
			targetTime: "09:00",
			wantTypes:  []dispatch.ChangeType{dispatch.ChangeReassign},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := assignChangeSet(tt.booking, tt.guideID, tt.targetTime)
			if len(changes) != len(tt.wantTypes) {
				t.Fatalf("got %d changes, want %d", len(changes), len(tt.wantTypes))
			}
			for i, want := range tt.wantTypes {
				if changes[i].Type != want {
					t.Errorf("change %d: got %s, want %s", i, changes[i].Type, want)
				}
			}
		})
	}
}
