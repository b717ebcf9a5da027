// Package tui provides the terminal dispatch board.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/saimali7/Tour-CRM-sub000/internal/tui/theme"
)

// Default column width - recalculated from the terminal width.
const defaultColWidth = 20

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	TitleStyle lipgloss.Style

	// Column headers
	GuideHeaderStyle      lipgloss.Style
	GuideHeaderOverStyle  lipgloss.Style // hovered lane while dragging
	PoolHeaderStyle       lipgloss.Style
	OutsourcedHeaderStyle lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Run blocks
	RunSharedStyle   lipgloss.Style
	RunCharterStyle  lipgloss.Style
	RunPoolStyle     lipgloss.Style
	RunSelectedStyle lipgloss.Style
	RunDraggedStyle  lipgloss.Style // the lifted booking's original block

	// Drop preview
	PreviewOkStyle     lipgloss.Style
	PreviewDeniedStyle lipgloss.Style

	// Empty cell and cursor
	EmptyCellStyle lipgloss.Style
	CursorStyle    lipgloss.Style

	// Footer / status
	FooterStyle    lipgloss.Style
	StatusStyle    lipgloss.Style
	StatusErrStyle lipgloss.Style
	HelpStyle      lipgloss.Style

	// Modal
	ModalStyle             lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalHintStyle         lipgloss.Style
	ModalWarningStyle      lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
}

// NewStyles builds the style set from a theme.
func NewStyles(t *theme.Theme) *Styles {
	bg := theme.Color(t.Bg)
	bgHi := theme.Color(t.BgHighlight)
	bgSel := theme.Color(t.BgSelection)
	fg := theme.Color(t.Fg)
	fgMuted := theme.Color(t.FgMuted)
	accent := theme.Color(t.Accent)
	shared := theme.Color(t.Shared)
	charter := theme.Color(t.Charter)
	pool := theme.Color(t.Pool)
	ok := theme.Color(t.Ok)
	danger := theme.Color(t.Danger)
	warning := theme.Color(t.Warning)

	return &Styles{
		TitleStyle: lipgloss.NewStyle().Foreground(accent).Bold(true),

		GuideHeaderStyle:      lipgloss.NewStyle().Foreground(fg).Bold(true).Align(lipgloss.Center),
		GuideHeaderOverStyle:  lipgloss.NewStyle().Foreground(bg).Background(accent).Bold(true).Align(lipgloss.Center),
		PoolHeaderStyle:       lipgloss.NewStyle().Foreground(pool).Bold(true).Align(lipgloss.Center),
		OutsourcedHeaderStyle: lipgloss.NewStyle().Foreground(fgMuted).Italic(true).Align(lipgloss.Center),

		TimeColumnStyle: lipgloss.NewStyle().Foreground(fgMuted),

		RunSharedStyle:   lipgloss.NewStyle().Foreground(bg).Background(shared),
		RunCharterStyle:  lipgloss.NewStyle().Foreground(bg).Background(charter).Bold(true),
		RunPoolStyle:     lipgloss.NewStyle().Foreground(bg).Background(pool),
		RunSelectedStyle: lipgloss.NewStyle().Foreground(fg).Background(bgSel).Bold(true),
		RunDraggedStyle:  lipgloss.NewStyle().Foreground(fgMuted).Background(bgHi).Italic(true),

		PreviewOkStyle:     lipgloss.NewStyle().Foreground(bg).Background(ok).Bold(true),
		PreviewDeniedStyle: lipgloss.NewStyle().Foreground(bg).Background(danger).Bold(true),

		EmptyCellStyle: lipgloss.NewStyle().Foreground(fgMuted),
		CursorStyle:    lipgloss.NewStyle().Background(bgSel),

		FooterStyle:    lipgloss.NewStyle().Foreground(fgMuted),
		StatusStyle:    lipgloss.NewStyle().Foreground(ok),
		StatusErrStyle: lipgloss.NewStyle().Foreground(danger).Bold(true),
		HelpStyle:      lipgloss.NewStyle().Foreground(fgMuted),

		ModalStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Background(bgHi).
			Padding(1, 2),
		ModalTitleStyle:        lipgloss.NewStyle().Foreground(accent).Bold(true),
		ModalBodyStyle:         lipgloss.NewStyle().Foreground(fg),
		ModalHintStyle:         lipgloss.NewStyle().Foreground(fgMuted),
		ModalWarningStyle:      lipgloss.NewStyle().Foreground(warning).Bold(true),
		ModalButtonStyle:       lipgloss.NewStyle().Foreground(fg).Background(bgSel).Padding(0, 2),
		ModalButtonActiveStyle: lipgloss.NewStyle().Foreground(bg).Background(accent).Bold(true).Padding(0, 2),
		ModalLabelStyle:        lipgloss.NewStyle().Foreground(fgMuted),
		ModalInputTextStyle:    lipgloss.NewStyle().Foreground(fg),
		ModalPlaceholderStyle:  lipgloss.NewStyle().Foreground(fgMuted),
	}
}
