package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saimali7/Tour-CRM-sub000/internal/board"
	"github.com/saimali7/Tour-CRM-sub000/internal/config"
	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub000/internal/timeline"
	"github.com/saimali7/Tour-CRM-sub000/internal/tui/commands"
	"github.com/saimali7/Tour-CRM-sub000/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag        // a booking or run is lifted
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalConfirmOverride
	ModalOutsource
	ModalRunDetail
)

// Position is a cursor position on the board. Column 0 is the unassigned
// pool; columns 1..N are the guide lanes in sheet order.
type Position struct {
	Col int
	Row int // timeline row, unitMin minutes each
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	svc    dispatch.Service
	config *config.Config
	oplog  *board.OpLog

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Day window and board geometry
	window  timeline.Window
	unitMin int

	// State
	date    time.Time
	sheet   *dispatch.DaySheet
	session *board.DragSession
	cursor  Position
	mode    Mode
	loading bool

	// Modal state
	modalType    ModalType
	modalChoice  int // 0 = cancel, 1 = confirm
	denialMsg    string
	projected    int
	formName     textinput.Model
	formContact  textinput.Model
	formFocus    int
	outsourceKey string
	detailKey    string

	// Terminal dimensions and layout
	width        int
	height       int
	colWidth     int
	scrollOffset int

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time

	// Error state
	err error
}

// New creates a new TUI model. The config must already be validated.
func New(svc dispatch.Service, cfg *config.Config, date time.Time) (*Model, error) {
	window, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("frappe")
	}
	styles := NewStyles(t)

	formName := textinput.New()
	formName.Placeholder = "Partner name"
	formName.CharLimit = 64
	formName.Width = 32
	formName.PlaceholderStyle = styles.ModalPlaceholderStyle
	formName.TextStyle = styles.ModalInputTextStyle

	formContact := textinput.New()
	formContact.Placeholder = "Phone or email"
	formContact.CharLimit = 64
	formContact.Width = 32
	formContact.PlaceholderStyle = styles.ModalPlaceholderStyle
	formContact.TextStyle = styles.ModalInputTextStyle

	return &Model{
		svc:         svc,
		config:      cfg,
		oplog:       board.NewOpLog(svc, date),
		theme:       t,
		styles:      styles,
		window:      window,
		unitMin:     cfg.Day.SlotMinutes,
		date:        date,
		session:     board.NewDragSession(window, cfg.Day.SnapMinutes),
		mode:        ModeNormal,
		loading:     true,
		formName:    formName,
		formContact: formContact,
		colWidth:    defaultColWidth,
	}, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadDay(m.svc, m.date)
}

// columnCount is the pool column plus one lane per guide.
func (m *Model) columnCount() int {
	if m.sheet == nil {
		return 1
	}
	return 1 + len(m.sheet.Guides)
}

// guideAt returns the guide behind a column, nil for the pool.
func (m *Model) guideAt(col int) *dispatch.Guide {
	if m.sheet == nil || col < 1 || col > len(m.sheet.Guides) {
		return nil
	}
	return m.sheet.Guides[col-1]
}

// runsAt returns the tour runs rendered in a column.
func (m *Model) runsAt(col int) []dispatch.TourRun {
	if m.sheet == nil {
		return nil
	}
	if g := m.guideAt(col); g != nil {
		return m.sheet.RunsFor(g.ID)
	}
	return m.sheet.PoolRuns()
}

// runAtCursor returns the run under the cursor, or nil over an empty slot.
func (m *Model) runAtCursor() *dispatch.TourRun {
	runs := m.runsAt(m.cursor.Col)
	at := m.window.PositionToTime(m.cursor.Row, m.unitMin, 0, 0)
	for i := range runs {
		if runs[i].Start <= at && at < runs[i].End {
			return &runs[i]
		}
	}
	return nil
}

// setStatus shows a transient message on the status line.
func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = time.Now().Add(4 * time.Second)
}

// maxRows is the number of timeline rows the day window needs.
func (m *Model) maxRows() int {
	return m.window.Rows(m.unitMin)
}

// setDate rebinds the board to another day: new sheet, empty history, any
// drag discarded.
func (m *Model) setDate(date time.Time) tea.Cmd {
	m.date = date
	m.oplog.SetDate(date)
	m.session.Cancel()
	m.mode = ModeNormal
	m.loading = true
	return commands.LoadDay(m.svc, date)
}

// Run starts the TUI.
func Run(svc dispatch.Service, cfg *config.Config, date time.Time) error {
	return RunWithDebug(svc, cfg, date, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(svc dispatch.Service, cfg *config.Config, date time.Time, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model, err := New(svc, cfg, date)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
