package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub000/internal/tui/commands"
)

// Row 4 is the 09:00 slot with the default 07:00 window and 30 minute rows.
const row0900 = 4

func TestKeys_QuitOnQ(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("command is not quit")
	}
}

func TestKeys_NavigationClampsToBoard(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, "h")
	if m.cursor.Col != 0 {
		t.Fatalf("col = %d after h at left edge, want 0", m.cursor.Col)
	}

	m, _ = press(t, m, "l", "l", "l", "l")
	if m.cursor.Col != 2 {
		t.Fatalf("col = %d after repeated l, want 2", m.cursor.Col)
	}

	m, _ = press(t, m, "G")
	if m.cursor.Row != m.maxRows()-1 {
		t.Fatalf("row = %d after G, want %d", m.cursor.Row, m.maxRows()-1)
	}

	m, _ = press(t, m, "g")
	if m.cursor.Row != 0 {
		t.Fatalf("row = %d after g, want 0", m.cursor.Row)
	}
}

func TestKeys_DayNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.date

	m, cmd := press(t, m, "[")
	if !m.date.Equal(before.AddDate(0, 0, -1)) {
		t.Fatalf("date = %s, want previous day", m.date.Format("2006-01-02"))
	}
	if !m.loading || cmd == nil {
		t.Fatal("expected a reload after day change")
	}
}

func TestKeys_StartDragFromPool(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = Position{Col: 0, Row: row0900}

	m, _ = press(t, m, " ")

	if m.mode != ModeDrag {
		t.Fatalf("mode = %v, want drag", m.mode)
	}
	if !m.session.Active() {
		t.Fatal("session not active")
	}
	if m.cursor.Col == 0 {
		t.Fatal("cursor still on the pool column")
	}
	if got := m.session.State().Booking.ID; got != "b1" {
		t.Fatalf("dragging %q, want b1", got)
	}
}

func TestKeys_DragCancel(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = Position{Col: 0, Row: row0900}

	m, _ = press(t, m, " ", "esc")

	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
	if m.session.Active() {
		t.Fatal("session still active after cancel")
	}
}

func TestKeys_DragPoolColumnIsNotATarget(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = Position{Col: 0, Row: row0900}

	m, _ = press(t, m, " ", "h", "h", "h")
	if m.cursor.Col != 1 {
		t.Fatalf("col = %d while dragging, want 1", m.cursor.Col)
	}
}

func TestKeys_DropAssignsFromPool(t *testing.T) {
	m, svc := newTestModel(t)
	m.cursor = Position{Col: 0, Row: row0900}

	// Lift b1 and drop it on Bo's empty lane at the same slot.
	m, _ = press(t, m, " ", "l")
	m, cmd := press(t, m, "enter")

	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after drop, want normal", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected a commit command")
	}
	msg := cmd()
	done, ok := msg.(commands.MutationDoneMsg)
	if !ok {
		t.Fatalf("commit produced %T, want MutationDoneMsg", msg)
	}
	if done.Kind != commands.MutationCommit {
		t.Fatalf("kind = %s, want commit", done.Kind)
	}
	if len(svc.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(svc.batches))
	}
	ch := svc.batches[0][0]
	if ch.Type != dispatch.ChangeAssign || ch.ToGuide != "g2" {
		t.Fatalf("unexpected change %+v", ch)
	}
}

func TestKeys_UndoAfterCommit(t *testing.T) {
	m, svc := newTestModel(t)
	m.cursor = Position{Col: 0, Row: row0900}

	m, _ = press(t, m, " ", "l")
	m, cmd := press(t, m, "enter")
	next, _ := m.Update(cmd())
	m = next.(Model)

	m, cmd = press(t, m, "u")
	if cmd == nil {
		t.Fatal("expected an undo command")
	}
	if _, ok := cmd().(commands.MutationDoneMsg); !ok {
		t.Fatal("undo did not complete")
	}
	if len(svc.batches) != 2 {
		t.Fatalf("batches = %d, want forward plus inverse", len(svc.batches))
	}
	inverse := svc.batches[1][0]
	if inverse.Type != dispatch.ChangeUnassign || inverse.FromGuide != "g2" {
		t.Fatalf("unexpected inverse %+v", inverse)
	}
}

func TestKeys_UndoEmptyHistory(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(t, m, "u")
	if cmd != nil {
		t.Fatal("expected no command on empty history")
	}
	if !m.statusErr {
		t.Fatal("expected a warning status")
	}
}

func TestKeys_CapacityDenialOpensOverrideModal(t *testing.T) {
	m, svc := newTestModel(t)
	// Fill Ana to capacity so the pool booking pushes her over.
	svc.sheet.Bookings[1].Adults = 8
	m.cursor = Position{Col: 0, Row: row0900}

	m, _ = press(t, m, " ")
	if m.cursor.Col != 1 {
		t.Fatalf("col = %d, want Ana's lane", m.cursor.Col)
	}
	m, cmd := press(t, m, "enter")

	if cmd != nil {
		t.Fatal("denied drop must not commit")
	}
	if m.mode != ModeModal || m.modalType != ModalConfirmOverride {
		t.Fatalf("mode = %v modal = %v, want override modal", m.mode, m.modalType)
	}
	if m.projected != 10 {
		t.Fatalf("projected = %d, want 10", m.projected)
	}

	// Confirming applies the batch with the override recorded.
	m, cmd = press(t, m, "y")
	if cmd == nil {
		t.Fatal("expected a commit command after confirm")
	}
	done, ok := cmd().(commands.MutationDoneMsg)
	if !ok {
		t.Fatal("override commit did not complete")
	}
	if done.Op.Projected != 10 {
		t.Fatalf("operation projected = %d, want 10", done.Op.Projected)
	}
	if len(svc.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(svc.batches))
	}
}

func TestKeys_OverrideModalEscReturnsToDrag(t *testing.T) {
	m, svc := newTestModel(t)
	svc.sheet.Bookings[1].Adults = 8
	m.cursor = Position{Col: 0, Row: row0900}

	m, _ = press(t, m, " ", "enter", "esc")

	if m.mode != ModeDrag {
		t.Fatalf("mode = %v, want back in drag", m.mode)
	}
	if !m.session.Active() {
		t.Fatal("session lost across the modal round trip")
	}
}

func TestKeys_OutsourceModal(t *testing.T) {
	m, svc := newTestModel(t)
	m.cursor = Position{Col: 1, Row: row0900}

	m, _ = press(t, m, "o")
	if m.mode != ModeModal || m.modalType != ModalOutsource {
		t.Fatalf("mode = %v modal = %v, want outsource modal", m.mode, m.modalType)
	}

	// Empty name is refused.
	m, cmd := press(t, m, "enter")
	if cmd != nil || m.modalType != ModalOutsource {
		t.Fatal("empty name must keep the modal open")
	}

	m.formName.SetValue("Island Partners")
	m, cmd = press(t, m, "enter")
	if cmd == nil {
		t.Fatal("expected an outsource command")
	}
	msg := cmd()
	added, ok := msg.(commands.GuideAddedMsg)
	if !ok {
		t.Fatalf("outsource produced %T, want GuideAddedMsg", msg)
	}
	if added.Guide.Name != "Island Partners" || !added.Guide.Outsourced {
		t.Fatalf("unexpected guide %+v", added.Guide)
	}
	if svc.outsourcedKey == "" {
		t.Fatal("run key not passed to the service")
	}
}
