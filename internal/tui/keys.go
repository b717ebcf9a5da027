package tui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saimali7/Tour-CRM-sub000/internal/board"
	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub000/internal/timeline"
	"github.com/saimali7/Tour-CRM-sub000/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeDrag:
		return m.handleDragKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case "l", "right":
		if m.cursor.Col < m.columnCount()-1 {
			m.cursor.Col++
		}
	case "j", "down":
		if m.cursor.Row < m.maxRows()-1 {
			m.cursor.Row++
			m.ensureCursorVisible()
		}
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
			m.ensureCursorVisible()
		}
	case "g":
		m.cursor.Row = 0
		m.ensureCursorVisible()
	case "G":
		m.cursor.Row = m.maxRows() - 1
		m.ensureCursorVisible()

	// Day navigation
	case "[", "shift+left":
		return m, m.setDate(m.date.AddDate(0, 0, -1))
	case "]", "shift+right":
		return m, m.setDate(m.date.AddDate(0, 0, 1))
	case "t":
		return m, m.setDate(timeline.TruncateToDay(time.Now()))

	// Drag
	case " ", "y":
		return m.startDrag()

	case "enter":
		run := m.runAtCursor()
		if run == nil {
			return m, nil
		}
		m.detailKey = run.Key
		m.mode = ModeModal
		m.modalType = ModalRunDetail
		return m, nil

	// History
	case "u":
		if m.oplog.IsMutating() {
			m.setStatus("Mutation in flight, hold on", true)
			return m, nil
		}
		if !m.oplog.CanUndo() {
			m.setStatus("Nothing to undo", true)
			return m, nil
		}
		m.loading = true
		return m, commands.UndoOp(m.oplog)
	case "U", "ctrl+r":
		if m.oplog.IsMutating() {
			m.setStatus("Mutation in flight, hold on", true)
			return m, nil
		}
		if !m.oplog.CanRedo() {
			m.setStatus("Nothing to redo", true)
			return m, nil
		}
		m.loading = true
		return m, commands.RedoOp(m.oplog)

	// Actions
	case "o":
		return m.openOutsourceModal()
	case "c":
		if m.sheet == nil {
			return m, nil
		}
		return m, commands.CopyManifest(buildManifest(m.sheet))
	case "r":
		m.loading = true
		return m, commands.LoadDay(m.svc, m.date)
	}

	return m, nil
}

// handleDragKeys handles keys while a booking is lifted.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.session.Cancel()
		m.mode = ModeNormal
		m.setStatus("Drag cancelled", false)
		LogDrag("cancel", "", "")
		return m, nil

	case "h", "left":
		if m.cursor.Col > 1 {
			m.cursor.Col--
		} else {
			m.cursor.Col = 1 // lanes only; the pool is not a drop target
		}
		m.retarget()
	case "l", "right":
		if m.cursor.Col < m.columnCount()-1 {
			m.cursor.Col++
		}
		m.retarget()
	case "j", "down":
		if m.cursor.Row < m.maxRows()-1 {
			m.cursor.Row++
			m.ensureCursorVisible()
		}
		m.retarget()
	case "k", "up":
		if m.cursor.Row > 0 {
			m.cursor.Row--
			m.ensureCursorVisible()
		}
		m.retarget()

	case "enter", " ":
		return m.tryDrop()
	}

	return m, nil
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalConfirmOverride:
		return m.handleOverrideKeys(msg)
	case ModalOutsource:
		return m.handleOutsourceKeys(msg)
	case ModalRunDetail:
		switch msg.String() {
		case "esc", "enter", "q":
			m.mode = ModeNormal
			m.modalType = ModalNone
		}
		return m, nil
	}
	m.mode = ModeNormal
	m.modalType = ModalNone
	return m, nil
}

func (m Model) handleOverrideKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		// Back to dragging; the target and its denial are still current.
		m.mode = ModeDrag
		m.modalType = ModalNone
		return m, nil
	case "left", "h", "right", "l", "tab":
		m.modalChoice = 1 - m.modalChoice
		return m, nil
	case "y":
		m.modalChoice = 1
		return m.confirmOverride()
	case "enter":
		if m.modalChoice == 1 {
			return m.confirmOverride()
		}
		m.mode = ModeDrag
		m.modalType = ModalNone
		return m, nil
	}
	return m, nil
}

func (m Model) confirmOverride() (tea.Model, tea.Cmd) {
	m.modalType = ModalNone
	m.mode = ModeNormal

	intent, err := m.session.Drop(true)
	if err != nil {
		m.setStatus(err.Error(), true)
		LogError(err)
		return m, nil
	}
	LogMutation("commit-override", intent.Description)
	m.loading = true
	return m, commands.CommitOp(m.oplog, intent)
}

func (m Model) handleOutsourceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.modalType = ModalNone
		return m, nil
	case "tab", "shift+tab":
		m.formFocus = 1 - m.formFocus
		if m.formFocus == 0 {
			m.formName.Focus()
			m.formContact.Blur()
		} else {
			m.formContact.Focus()
			m.formName.Blur()
		}
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.formName.Value())
		if name == "" {
			m.setStatus("Partner name is required", true)
			return m, nil
		}
		contact := strings.TrimSpace(m.formContact.Value())
		m.mode = ModeNormal
		m.modalType = ModalNone
		m.loading = true
		return m, commands.Outsource(m.svc, m.date, m.outsourceKey, name, contact)
	}

	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.formName, cmd = m.formName.Update(msg)
	} else {
		m.formContact, cmd = m.formContact.Update(msg)
	}
	return m, cmd
}

// startDrag lifts the run under the cursor. A pool run with several members
// moves as a group; anything else moves the run's bookings one drag at a
// time, leading with the first member.
func (m Model) startDrag() (tea.Model, tea.Cmd) {
	if m.oplog.IsMutating() {
		m.setStatus("Mutation in flight, hold on", true)
		return m, nil
	}
	run := m.runAtCursor()
	if run == nil {
		m.setStatus("Nothing to pick up here", true)
		return m, nil
	}

	var err error
	if run.GuideID == "" {
		members := make([]*dispatch.Booking, 0, len(run.BookingIDs))
		for _, id := range run.BookingIDs {
			if b := m.sheet.Booking(id); b != nil {
				members = append(members, b)
			}
		}
		if len(members) > 1 {
			err = m.session.StartGroup(members)
		} else if len(members) == 1 {
			err = m.session.Start(members[0], nil)
		} else {
			err = dispatch.ErrBookingNotFound
		}
	} else {
		b := m.sheet.Booking(run.BookingIDs[0])
		src := run.GuideID
		err = m.session.Start(b, &src)
	}
	if err != nil {
		m.setStatus(err.Error(), true)
		LogError(err)
		return m, nil
	}

	m.mode = ModeDrag
	if m.cursor.Col == 0 {
		m.cursor.Col = 1
	}
	m.retarget()
	LogDrag("start", m.session.State().Booking.ID, "")
	m.setStatus("Dragging "+m.session.State().Booking.Label(), false)
	return m, nil
}

// retarget recomputes the drop target from the cursor position.
func (m *Model) retarget() {
	guide := m.guideAt(m.cursor.Col)
	if guide == nil {
		return
	}
	runs := m.sheet.RunsFor(guide.ID)
	if _, err := m.session.UpdateTarget(guide, runs, m.cursor.Row, m.unitMin); err != nil {
		LogError(err)
	}
}

// tryDrop commits the drag, routing a capacity denial through the override
// confirmation modal.
func (m Model) tryDrop() (tea.Model, tea.Cmd) {
	target := m.session.Target()
	if target == nil {
		m.session.Cancel()
		m.mode = ModeNormal
		m.setStatus("No drop target", true)
		return m, nil
	}

	v := target.Validation
	if !v.Allowed && v.Reason.Overridable() {
		m.mode = ModeModal
		m.modalType = ModalConfirmOverride
		m.modalChoice = 0
		m.denialMsg = v.Message
		m.projected = v.Projected
		return m, nil
	}

	intent, err := m.session.Drop(false)
	m.mode = ModeNormal
	if err != nil {
		switch {
		case errors.Is(err, board.ErrNothingToCommit):
			m.setStatus("Nothing changed", false)
		case errors.Is(err, board.ErrDropDenied):
			m.setStatus(err.Error(), true)
		default:
			m.setStatus(err.Error(), true)
		}
		LogError(err)
		return m, nil
	}

	LogDrag("drop", intent.Description, target.Time)
	LogMutation("commit", intent.Description)
	m.loading = true
	return m, commands.CommitOp(m.oplog, intent)
}

// openOutsourceModal targets the run under the cursor for external staffing.
func (m Model) openOutsourceModal() (tea.Model, tea.Cmd) {
	run := m.runAtCursor()
	if run == nil {
		m.setStatus("Move the cursor onto a run to outsource it", true)
		return m, nil
	}
	if g := m.guideAt(m.cursor.Col); g != nil && g.Outsourced {
		m.setStatus("Run is already outsourced", true)
		return m, nil
	}

	m.outsourceKey = run.Key
	m.formName.SetValue("")
	m.formContact.SetValue("")
	m.formFocus = 0
	m.formName.Focus()
	m.formContact.Blur()
	m.mode = ModeModal
	m.modalType = ModalOutsource
	return m, nil
}

// ensureCursorVisible keeps the cursor row inside the scrolled viewport.
func (m *Model) ensureCursorVisible() {
	visible := m.visibleRows()
	if visible <= 0 {
		return
	}
	if m.cursor.Row < m.scrollOffset {
		m.scrollOffset = m.cursor.Row
	}
	if m.cursor.Row >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor.Row - visible + 1
	}
}

// visibleRows is how many timeline rows fit under the chrome.
func (m *Model) visibleRows() int {
	// Title, column headers, footer, status line.
	reserved := 4
	if m.height <= reserved {
		return m.maxRows()
	}
	rows := m.height - reserved
	if rows > m.maxRows() {
		rows = m.maxRows()
	}
	return rows
}
