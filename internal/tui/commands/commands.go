// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saimali7/Tour-CRM-sub000/internal/board"
	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
)

// DayLoadedMsg is sent when a day sheet is loaded.
type DayLoadedMsg struct {
	Sheet *dispatch.DaySheet
}

// MutationDoneMsg is sent when a commit, undo, or redo succeeds. The board
// reloads the day on receipt; the operation feeds the status line.
type MutationDoneMsg struct {
	Op   board.Operation
	Kind MutationKind
}

// MutationKind tags what produced a MutationDoneMsg.
type MutationKind string

const (
	MutationCommit MutationKind = "commit"
	MutationUndo   MutationKind = "undo"
	MutationRedo   MutationKind = "redo"
)

// MutationFailedMsg is sent when a commit, undo, or redo errors out. The
// board reloads the day on receipt so the view never shows a projection
// the store may have partially rejected.
type MutationFailedMsg struct {
	Err  error
	Kind MutationKind
}

// GuideAddedMsg is sent when an outsourced guide was created and staffed.
type GuideAddedMsg struct {
	Guide *dispatch.Guide
}

// CopiedMsg is sent when the day manifest landed on the clipboard.
type CopiedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadDay loads the dispatch sheet for one day.
func LoadDay(svc dispatch.Service, date time.Time) tea.Cmd {
	return func() tea.Msg {
		sheet, err := svc.GetDispatch(context.Background(), date)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DayLoadedMsg{Sheet: sheet}
	}
}

// CommitOp sends a drop intent through the operation log.
func CommitOp(log *board.OpLog, intent board.Intent) tea.Cmd {
	return func() tea.Msg {
		op, err := log.Commit(context.Background(), intent)
		if err != nil {
			return MutationFailedMsg{Err: err, Kind: MutationCommit}
		}
		return MutationDoneMsg{Op: op, Kind: MutationCommit}
	}
}

// UndoOp replays the inverse of the most recent operation.
func UndoOp(log *board.OpLog) tea.Cmd {
	return func() tea.Msg {
		op, err := log.Undo(context.Background())
		if err != nil {
			return MutationFailedMsg{Err: err, Kind: MutationUndo}
		}
		return MutationDoneMsg{Op: op, Kind: MutationUndo}
	}
}

// RedoOp replays the most recently undone operation.
func RedoOp(log *board.OpLog) tea.Cmd {
	return func() tea.Msg {
		op, err := log.Redo(context.Background())
		if err != nil {
			return MutationFailedMsg{Err: err, Kind: MutationRedo}
		}
		return MutationDoneMsg{Op: op, Kind: MutationRedo}
	}
}

// Outsource creates an outsourced guide and staffs a run with it.
func Outsource(svc dispatch.Service, date time.Time, runKey, name, contact string) tea.Cmd {
	return func() tea.Msg {
		g, err := svc.AddOutsourcedGuide(context.Background(), date, runKey, name, contact)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return GuideAddedMsg{Guide: g}
	}
}

// CopyManifest puts the rendered day manifest on the system clipboard.
func CopyManifest(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: err}
		}
		return CopiedMsg{}
	}
}
