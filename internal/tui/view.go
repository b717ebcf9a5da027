package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub000/internal/timeline"
)

// View renders the dispatch board.
func (m Model) View() string {
	if m.loading {
		return m.styles.TitleStyle.Render("Loading day sheet...")
	}
	if m.sheet == nil {
		if m.err != nil {
			return m.styles.StatusErrStyle.Render(fmt.Sprintf("Error: %v", m.err))
		}
		return ""
	}

	if m.mode == ModeModal {
		return m.renderModal()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderHeaders())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderTitle() string {
	title := m.styles.TitleStyle.Render("Tourboard " + m.date.Format("Mon 2006-01-02"))
	pool := len(m.sheet.Pool())
	counts := m.styles.HelpStyle.Render(fmt.Sprintf("  %d bookings, %d unassigned", len(m.sheet.Bookings), pool))
	return title + counts
}

// renderHeaders draws the pool header and one header per guide lane.
func (m *Model) renderHeaders() string {
	cells := make([]string, 0, m.columnCount())
	cells = append(cells, strings.Repeat(" ", timeGutterWidth))

	hovered := -1
	if m.mode == ModeDrag {
		hovered = m.cursor.Col
	}

	for col := 0; col < m.columnCount(); col++ {
		var label string
		style := m.styles.GuideHeaderStyle
		if g := m.guideAt(col); g != nil {
			if g.Outsourced {
				label = g.Name + " (ext)"
				style = m.styles.OutsourcedHeaderStyle
			} else {
				label = fmt.Sprintf("%s [%d]", g.Name, g.Capacity)
			}
		} else {
			label = fmt.Sprintf("Pool (%d)", len(m.sheet.Pool()))
			style = m.styles.PoolHeaderStyle
		}
		if col == hovered {
			style = m.styles.GuideHeaderOverStyle
		}
		cells = append(cells, style.Width(m.colWidth).Render(ansi.Truncate(label, m.colWidth, "…")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

const timeGutterWidth = 6

// renderGrid draws the visible rows of the timeline with every column's
// run blocks, the cursor, and the live drag preview.
func (m *Model) renderGrid() string {
	visible := m.visibleRows()
	cols := make([][]string, m.columnCount())
	for col := range cols {
		cols[col] = m.renderColumn(col)
	}

	var rows []string
	for r := m.scrollOffset; r < m.scrollOffset+visible && r < m.maxRows(); r++ {
		at := m.window.PositionToTime(r, m.unitMin, 0, 0)
		line := m.styles.TimeColumnStyle.Render(fmt.Sprintf("%-*s", timeGutterWidth, at))
		for col := range cols {
			line += cols[col][r]
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

// renderColumn pre-renders every timeline row of one column. Overlapping
// runs split the column into sub-lanes so both stay visible.
func (m *Model) renderColumn(col int) []string {
	rows := m.maxRows()
	runs := m.runsAt(col)
	lanes := dispatch.Lanes(runs)
	if len(lanes) == 0 {
		lanes = []dispatch.Lane{nil}
	}
	subWidth := m.colWidth / len(lanes)
	if subWidth < 4 {
		subWidth = 4
	}

	cells := make([]string, rows)
	for r := 0; r < rows; r++ {
		parts := make([]string, 0, len(lanes))
		for li, lane := range lanes {
			w := subWidth
			if li == len(lanes)-1 {
				w = m.colWidth - subWidth*(len(lanes)-1)
			}
			parts = append(parts, m.renderCell(col, lane, r, w))
		}
		cells[r] = strings.Join(parts, "")
	}
	return cells
}

// renderCell draws one sub-lane cell at a timeline row.
func (m *Model) renderCell(col int, lane dispatch.Lane, row, width int) string {
	at := m.window.PositionToTime(row, m.unitMin, 0, 0)
	slotEnd := timeline.AddMinutes(at, m.unitMin)

	var run *dispatch.TourRun
	for i := range lane {
		if lane[i].Start < slotEnd && at < lane[i].End {
			run = &lane[i]
			break
		}
	}

	underCursor := col == m.cursor.Col && row == m.cursor.Row

	if run == nil {
		if underCursor && m.mode == ModeDrag {
			return m.renderPreview(width)
		}
		content := strings.Repeat("·", 1) + strings.Repeat(" ", width-1)
		if underCursor {
			return m.styles.CursorStyle.Width(width).Render(content)
		}
		return m.styles.EmptyCellStyle.Width(width).Render(content)
	}

	style := m.runStyle(run)
	if underCursor && m.mode == ModeDrag {
		return m.renderPreview(width)
	}
	if underCursor {
		style = m.styles.RunSelectedStyle
	}
	if m.mode == ModeDrag && m.dragSourceRun(run) {
		style = m.styles.RunDraggedStyle
	}

	var content string
	if run.Start >= at && run.Start < slotEnd {
		content = fmt.Sprintf("%s %s ×%d", run.Start, run.TourName, run.Guests)
	} else {
		content = "│"
	}
	return style.Width(width).Render(ansi.Truncate(content, width, "…"))
}

// renderPreview draws the dragged booking at the hovered slot, colored by
// the live validation verdict.
func (m *Model) renderPreview(width int) string {
	state := m.session.State()
	if state == nil {
		return strings.Repeat(" ", width)
	}
	style := m.styles.PreviewOkStyle
	if t := m.session.Target(); t != nil && !t.Validation.Allowed {
		style = m.styles.PreviewDeniedStyle
	}
	guests := state.Booking.Guests()
	for _, b := range state.Group {
		guests += b.Guests()
	}
	content := fmt.Sprintf("▸ %s ×%d", state.Booking.TourName, guests)
	return style.Width(width).Render(ansi.Truncate(content, width, "…"))
}

func (m *Model) runStyle(run *dispatch.TourRun) lipgloss.Style {
	switch {
	case run.GuideID == "":
		return m.styles.RunPoolStyle
	case run.Mode == dispatch.ModeCharter:
		return m.styles.RunCharterStyle
	default:
		return m.styles.RunSharedStyle
	}
}

// dragSourceRun reports whether the run holds the booking being dragged.
func (m *Model) dragSourceRun(run *dispatch.TourRun) bool {
	state := m.session.State()
	return state != nil && state.Booking != nil && run.Contains(state.Booking.ID)
}

func (m *Model) renderFooter() string {
	var help string
	switch m.mode {
	case ModeDrag:
		help = "h/l lane  j/k time  enter drop  esc cancel"
	default:
		help = "hjkl move  space grab  u undo  ctrl+r redo  o outsource  c copy  [/] day  q quit"
	}

	status := ""
	if m.mode == ModeDrag {
		if t := m.session.Target(); t != nil {
			if t.Validation.Allowed {
				status = m.styles.StatusStyle.Render(fmt.Sprintf("drop at %s on %s", t.Time, t.Guide.Name))
			} else {
				status = m.styles.StatusErrStyle.Render(fmt.Sprintf("%s: %s", t.Validation.Reason, t.Validation.Message))
			}
		}
	} else if m.statusMsg != "" {
		style := m.styles.StatusStyle
		if m.statusErr {
			style = m.styles.StatusErrStyle
		}
		status = style.Render(m.statusMsg)
	}

	line := m.styles.HelpStyle.Render(help)
	if status != "" {
		line += "  " + status
	}
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	return line
}

// renderModal draws the active modal centered in the terminal.
func (m *Model) renderModal() string {
	var box string
	switch m.modalType {
	case ModalConfirmOverride:
		box = m.renderOverrideModal()
	case ModalOutsource:
		box = m.renderOutsourceModal()
	case ModalRunDetail:
		box = m.renderRunDetailModal()
	}
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m *Model) renderOverrideModal() string {
	cancel := m.styles.ModalButtonStyle.Render("Cancel")
	confirm := m.styles.ModalButtonStyle.Render("Override")
	if m.modalChoice == 1 {
		confirm = m.styles.ModalButtonActiveStyle.Render("Override")
	} else {
		cancel = m.styles.ModalButtonActiveStyle.Render("Cancel")
	}

	body := strings.Join([]string{
		m.styles.ModalTitleStyle.Render("Capacity override"),
		"",
		m.styles.ModalBodyStyle.Render(m.denialMsg),
		m.styles.ModalWarningStyle.Render(fmt.Sprintf("Projected load: %d guests", m.projected)),
		"",
		cancel + "  " + confirm,
		"",
		m.styles.ModalHintStyle.Render("y confirm · esc back"),
	}, "\n")
	return m.styles.ModalStyle.Render(body)
}

func (m *Model) renderRunDetailModal() string {
	run := m.sheet.Run(m.detailKey)
	if run == nil {
		return m.styles.ModalStyle.Render(m.styles.ModalBodyStyle.Render("Run no longer exists"))
	}

	mode := "shared"
	if run.Mode == dispatch.ModeCharter {
		mode = "charter"
	}
	lines := []string{
		m.styles.ModalTitleStyle.Render(run.TourName),
		m.styles.ModalHintStyle.Render(fmt.Sprintf("%s-%s · %s · %d guests", run.Start, run.End, mode, run.Guests)),
		"",
	}
	for _, id := range run.BookingIDs {
		b := m.sheet.Booking(id)
		if b == nil {
			continue
		}
		pickup := b.PickupLocation
		if pickup == "" {
			pickup = "no pickup set"
		}
		party := fmt.Sprintf("%d", b.PartySize())
		lines = append(lines, m.styles.ModalBodyStyle.Render(
			fmt.Sprintf("%s ×%s  %s %s", b.CustomerName, party, b.PickupTime, pickup)))
	}
	lines = append(lines, "", m.styles.ModalHintStyle.Render("esc close"))
	return m.styles.ModalStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderOutsourceModal() string {
	nameLabel := m.styles.ModalLabelStyle.Render("Name   ")
	contactLabel := m.styles.ModalLabelStyle.Render("Contact")

	body := strings.Join([]string{
		m.styles.ModalTitleStyle.Render("Outsource run"),
		"",
		nameLabel + " " + m.formName.View(),
		contactLabel + " " + m.formContact.View(),
		"",
		m.styles.ModalHintStyle.Render("tab switch · enter confirm · esc cancel"),
	}, "\n")
	return m.styles.ModalStyle.Render(body)
}

// buildManifest formats the day as plain text for the clipboard: one block
// per guide with the runs and their member bookings, pool last.
func buildManifest(sheet *dispatch.DaySheet) string {
	if sheet == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Dispatch %s\n", sheet.Date.Format("2006-01-02"))

	writeRuns := func(runs []dispatch.TourRun) {
		for _, run := range runs {
			fmt.Fprintf(&b, "  %s-%s %s (%d guests)\n", run.Start, run.End, run.TourName, run.Guests)
			for _, id := range run.BookingIDs {
				bk := sheet.Booking(id)
				if bk == nil {
					continue
				}
				pickup := bk.PickupLocation
				if pickup == "" {
					pickup = "no pickup set"
				}
				fmt.Fprintf(&b, "    %s ×%d, %s %s\n", bk.CustomerName, bk.Guests(), bk.PickupTime, pickup)
			}
		}
	}

	for _, g := range sheet.Guides {
		runs := sheet.RunsFor(g.ID)
		if len(runs) == 0 {
			continue
		}
		name := g.Name
		if g.Outsourced {
			name += " (outsourced)"
		}
		fmt.Fprintf(&b, "\n%s\n", name)
		writeRuns(runs)
	}

	if pool := sheet.PoolRuns(); len(pool) > 0 {
		fmt.Fprintf(&b, "\nUnassigned\n")
		writeRuns(pool)
	}
	return b.String()
}
