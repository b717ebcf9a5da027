package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saimali7/Tour-CRM-sub000/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		m.ensureCursorVisible()
		return m, nil

	case commands.DayLoadedMsg:
		m.sheet = msg.Sheet
		m.loading = false
		m.err = nil
		if m.cursor.Col >= m.columnCount() {
			m.cursor.Col = m.columnCount() - 1
		}
		return m, nil

	case commands.MutationDoneMsg:
		switch msg.Kind {
		case commands.MutationUndo:
			m.setStatus("Undid: "+msg.Op.Description, false)
		case commands.MutationRedo:
			m.setStatus("Redid: "+msg.Op.Description, false)
		default:
			if msg.Op.Projected > 0 {
				m.setStatus(fmt.Sprintf("%s (override, %d guests)", msg.Op.Description, msg.Op.Projected), false)
			} else {
				m.setStatus(msg.Op.Description, false)
			}
		}
		LogMutation(string(msg.Kind), msg.Op.Description)
		// Reload so lanes and the pool reflect the committed batch.
		return m, commands.LoadDay(m.svc, m.date)

	case commands.MutationFailedMsg:
		m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
		LogError(msg.Err)
		// Reload so the view drops any projection the store rejected.
		return m, commands.LoadDay(m.svc, m.date)

	case commands.GuideAddedMsg:
		m.setStatus("Outsourced to "+msg.Guide.Name, false)
		return m, commands.LoadDay(m.svc, m.date)

	case commands.CopiedMsg:
		m.setStatus("Day manifest copied to clipboard", false)
		return m, nil

	case commands.ErrMsg:
		m.loading = false
		m.err = msg.Err
		m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
		LogError(msg.Err)
		return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg, false)
		return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	// Feed everything else to the focused form input while the outsource
	// modal is open, cursor blink included.
	if m.mode == ModeModal && m.modalType == ModalOutsource {
		var cmd tea.Cmd
		if m.formFocus == 0 {
			m.formName, cmd = m.formName.Update(msg)
		} else {
			m.formContact, cmd = m.formContact.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

// calculateColWidth spreads the terminal width over the time gutter and the
// board columns.
func (m *Model) calculateColWidth() int {
	cols := m.columnCount()
	if cols == 0 || m.width == 0 {
		return defaultColWidth
	}
	const timeGutter = 6
	w := (m.width - timeGutter) / cols
	if w < 10 {
		w = 10
	}
	if w > 28 {
		w = 28
	}
	return w
}
