package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
)

// OpLog errors.
var (
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
	ErrMutationInFlight = errors.New("a mutation is already in flight")
	ErrBatchRejected    = errors.New("batch rejected by dispatch service")
)

const defaultMaxDepth = 50

// Operation is one committed unit of work: a forward change-set, the inverse
// computed from pre-mutation state, and a description for the status line.
type Operation struct {
	Forward     []dispatch.Change
	Inverse     []dispatch.Change
	Description string

	// Projected records the audited overutilization when the operation was
	// committed through a capacity override.
	Projected int
}

// OpLog owns the undo and redo stacks and is the only path to the remote
// batch boundary. Exactly one change-set may be in flight at a time; a second
// commit, undo, or redo while one is pending returns ErrMutationInFlight
// rather than risking stack corruption from out-of-order completions.
type OpLog struct {
	mu       sync.Mutex
	svc      dispatch.Service
	date     time.Time
	undo     []Operation
	redo     []Operation
	mutating bool
	maxDepth int
}

// NewOpLog creates an empty log bound to a service and day.
func NewOpLog(svc dispatch.Service, date time.Time) *OpLog {
	return &OpLog{svc: svc, date: date, maxDepth: defaultMaxDepth}
}

// SetDate rebinds the log to another day. Operations are per-day, so both
// stacks are discarded.
func (l *OpLog) SetDate(date time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.date = date
	l.undo = nil
	l.redo = nil
}

// Date returns the day the log is bound to.
func (l *OpLog) Date() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.date
}

// IsMutating reports whether a change-set is in flight. Callers disable
// drag-drop and undo/redo input while this is true.
func (l *OpLog) IsMutating() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mutating
}

// CanUndo returns true if there are operations to undo.
func (l *OpLog) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undo) > 0
}

// CanRedo returns true if there are operations to redo.
func (l *OpLog) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redo) > 0
}

// UndoCount returns the number of operations that can be undone.
func (l *OpLog) UndoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undo)
}

// RedoCount returns the number of operations that can be redone.
func (l *OpLog) RedoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redo)
}

// begin claims the single mutation slot.
func (l *OpLog) begin() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mutating {
		return ErrMutationInFlight
	}
	l.mutating = true
	return nil
}

func (l *OpLog) end() {
	l.mu.Lock()
	l.mutating = false
	l.mu.Unlock()
}

// Commit sends an intent's forward change-set to the batch boundary. The
// inverse is computed before anything is sent; only a fully successful batch
// pushes the operation onto the undo stack and clears the redo stack.
func (l *OpLog) Commit(ctx context.Context, intent Intent) (Operation, error) {
	inverse, err := dispatch.InvertAll(intent.Forward)
	if err != nil {
		return Operation{}, err
	}
	op := Operation{
		Forward:     intent.Forward,
		Inverse:     inverse,
		Description: intent.Description,
	}
	if intent.Overridden {
		op.Projected = intent.Projected
	}

	if err := l.begin(); err != nil {
		return Operation{}, err
	}
	defer l.end()

	if err := l.apply(ctx, op.Forward); err != nil {
		return Operation{}, err
	}

	l.mu.Lock()
	l.undo = append(l.undo, op)
	if len(l.undo) > l.maxDepth {
		l.undo = l.undo[1:]
	}
	l.redo = nil
	l.mu.Unlock()

	return op, nil
}

// Undo replays the inverse of the most recent operation. The operation only
// moves from the undo stack to the redo stack once the batch succeeds; a
// failed batch leaves both stacks untouched.
func (l *OpLog) Undo(ctx context.Context) (Operation, error) {
	if err := l.begin(); err != nil {
		return Operation{}, err
	}
	defer l.end()

	l.mu.Lock()
	if len(l.undo) == 0 {
		l.mu.Unlock()
		return Operation{}, ErrNothingToUndo
	}
	op := l.undo[len(l.undo)-1]
	l.mu.Unlock()

	if err := l.apply(ctx, op.Inverse); err != nil {
		return Operation{}, err
	}

	l.mu.Lock()
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, op)
	l.mu.Unlock()

	return op, nil
}

// Redo replays the original forward change-set of the most recently undone
// operation.
func (l *OpLog) Redo(ctx context.Context) (Operation, error) {
	if err := l.begin(); err != nil {
		return Operation{}, err
	}
	defer l.end()

	l.mu.Lock()
	if len(l.redo) == 0 {
		l.mu.Unlock()
		return Operation{}, ErrNothingToRedo
	}
	op := l.redo[len(l.redo)-1]
	l.mu.Unlock()

	if err := l.apply(ctx, op.Forward); err != nil {
		return Operation{}, err
	}

	l.mu.Lock()
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, op)
	l.mu.Unlock()

	return op, nil
}

// apply sends one change-set through the batch boundary and normalizes
// partial results into errors. The boundary contract is all-or-nothing, so a
// reported failure means nothing was applied.
func (l *OpLog) apply(ctx context.Context, changes []dispatch.Change) error {
	res, err := l.svc.BatchApplyChanges(ctx, l.date, changes)
	if err != nil {
		return fmt.Errorf("applying changes: %w", err)
	}
	if !res.Success || res.Failed > 0 {
		return fmt.Errorf("%w: %d applied, %d failed", ErrBatchRejected, res.Applied, res.Failed)
	}
	return nil
}
