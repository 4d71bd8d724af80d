// manager.go - Command Execution and History
//
// Manager owns the current repository state and the three stacks
// around it: an audit history of everything that ran, plus undo and
// redo stacks of applied state transitions. States are immutable
// values, so undo and redo are pointer swaps, never replays.
//
// Manager is not safe for concurrent use. Callers serialize access;
// the session layer wraps each manager in its own lock.

package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gitscape/gitscape/internal/git"
)

// DefaultHistoryLimit bounds each stack when no explicit limit is set.
const DefaultHistoryLimit = 100

// Executor evaluates one parsed command against a state and reports
// the outcome. Implementations never mutate the input state.
type Executor func(ctx context.Context, cmd git.ParsedCommand, st *git.State) git.Result

// EngineExecutor adapts a git.Engine to the Executor shape.
func EngineExecutor(e *git.Engine) Executor {
	return func(_ context.Context, cmd git.ParsedCommand, st *git.State) git.Result {
		return e.Execute(cmd, st)
	}
}

// Manager runs commands through an Executor and tracks history.
type Manager struct {
	executor Executor
	state    *git.State
	history  *ring[HistoryEntry]
	undo     *ring[HistoryEntry]
	redo     *ring[HistoryEntry]
	subs     []subscriber
	nextSub  int
	now      func() time.Time
}

// NewManager builds a manager starting from initial. A limit below one
// falls back to DefaultHistoryLimit.
func NewManager(exec Executor, initial *git.State, limit int) *Manager {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &Manager{
		executor: exec,
		state:    initial,
		history:  newRing[HistoryEntry](limit),
		undo:     newRing[HistoryEntry](limit),
		redo:     newRing[HistoryEntry](limit),
		now:      time.Now,
	}
}

// State returns the current state. Callers must treat it as read-only.
func (m *Manager) State() *git.State { return m.state }

// Execute validates cmd, runs it through the executor and, on an
// applied success, records it and advances the current state. Preview
// commands run the executor but never change anything. Execute itself
// never returns an error; failures come back coded on the result.
func (m *Manager) Execute(ctx context.Context, cmd Command) *ExecutionResult {
	res := &ExecutionResult{Command: cmd, State: m.state, ExecutedAt: m.now()}

	if v := Validate(cmd); !v.Valid {
		res.Errors = append(res.Errors, ExecError{
			Code:    ValidationError,
			Message: strings.Join(v.Errors, "; "),
		})
		return res
	}

	out, err := m.runExecutor(ctx, toParsed(cmd))
	if err != nil {
		res.Errors = append(res.Errors, ExecError{Code: UnexpectedError, Message: err.Error()})
		return res
	}
	if !out.Success {
		res.Errors = append(res.Errors, ExecError{Code: ExecutionError, Message: out.Err})
		return res
	}

	res.Success = true
	res.Output = out.Output
	res.Message = out.Message

	after := out.NewState
	changed := after != nil && after != m.state
	if changed {
		res.Changes = Diff(m.state, after)
	}

	if cmd.Preview {
		// dry run: show the would-be changes, touch nothing
		return res
	}

	entry := HistoryEntry{Before: m.state, After: m.state, Command: cmd, Result: res}
	if changed {
		entry.After = after
		m.undo.Push(entry)
		m.redo.Clear()
		m.state = after
		res.State = after
	}
	m.history.Push(entry)

	m.emit(Event{Type: CommandExecuted, Command: &entry.Command, Result: res})
	if changed {
		m.emit(Event{Type: StateChanged})
	}
	return res
}

// ExecuteSequence runs commands in order and stops at the first
// failure, leaving the state as of the last success.
func (m *Manager) ExecuteSequence(ctx context.Context, cmds []Command) *SequenceResult {
	seq := &SequenceResult{Success: true, FailedAt: -1}
	for i, cmd := range cmds {
		res := m.Execute(ctx, cmd)
		seq.Results = append(seq.Results, res)
		if !res.Success {
			seq.Success = false
			seq.FailedAt = i
			break
		}
	}
	seq.State = m.state
	return seq
}

// Undo reverts the most recent applied command, or, given a command
// id, everything back through that command. Each reverted entry moves
// to the redo stack.
func (m *Manager) Undo(commandID string) *StepResult {
	if m.undo.Len() == 0 {
		return &StepResult{State: m.state, Message: "nothing to undo"}
	}
	count := 1
	if commandID != "" {
		idx := m.findEntry(m.undo, commandID)
		if idx < 0 {
			return &StepResult{State: m.state, Message: fmt.Sprintf("command %s is not on the undo stack", commandID)}
		}
		count = m.undo.Len() - idx
	}

	var entry HistoryEntry
	for i := 0; i < count; i++ {
		entry, _ = m.undo.Pop()
		m.redo.Push(entry)
	}
	m.state = entry.Before

	m.emit(Event{Type: CommandUndone, Command: &entry.Command})
	m.emit(Event{Type: StateChanged})
	return &StepResult{
		Success: true,
		Command: &entry.Command,
		State:   m.state,
		Message: fmt.Sprintf("undid %s", describe(entry.Command)),
	}
}

// Redo reapplies the most recently undone command, or everything back
// through the named one. Redo emits StateChanged only; the command was
// already announced when it first ran.
func (m *Manager) Redo(commandID string) *StepResult {
	if m.redo.Len() == 0 {
		return &StepResult{State: m.state, Message: "nothing to redo"}
	}
	count := 1
	if commandID != "" {
		idx := m.findEntry(m.redo, commandID)
		if idx < 0 {
			return &StepResult{State: m.state, Message: fmt.Sprintf("command %s is not on the redo stack", commandID)}
		}
		count = m.redo.Len() - idx
	}

	var entry HistoryEntry
	for i := 0; i < count; i++ {
		entry, _ = m.redo.Pop()
		m.undo.Push(entry)
	}
	m.state = entry.After

	m.emit(Event{Type: StateChanged})
	return &StepResult{
		Success: true,
		Command: &entry.Command,
		State:   m.state,
		Message: fmt.Sprintf("redid %s", describe(entry.Command)),
	}
}

// StateAt returns the state as of just after the named command,
// looked up in the audit history. Nil when the id is unknown.
func (m *Manager) StateAt(commandID string) *git.State {
	for i := m.history.Len() - 1; i >= 0; i-- {
		if e := m.history.At(i); e.Command.ID == commandID {
			return e.After
		}
	}
	return nil
}

// Restore replaces the current state wholesale and wipes every stack.
// Snapshot imports and scenario resets come through here. The state is
// checked before anything is discarded.
func (m *Manager) Restore(st *git.State) error {
	if err := git.Check(st); err != nil {
		return fmt.Errorf("restore rejected: %w", err)
	}
	m.state = st
	m.history.Clear()
	m.undo.Clear()
	m.redo.Clear()
	m.emit(Event{Type: StateChanged})
	return nil
}

func (m *Manager) CanUndo() bool { return m.undo.Len() > 0 }
func (m *Manager) CanRedo() bool { return m.redo.Len() > 0 }

func (m *Manager) UndoCount() int { return m.undo.Len() }
func (m *Manager) RedoCount() int { return m.redo.Len() }

// History copies the audit log out, oldest first.
func (m *Manager) History() []HistoryEntry { return m.history.Items() }

// findEntry locates a command id on a stack, returning its index from
// the oldest end, newest match first.
func (m *Manager) findEntry(r *ring[HistoryEntry], commandID string) int {
	for i := r.Len() - 1; i >= 0; i-- {
		if r.At(i).Command.ID == commandID {
			return i
		}
	}
	return -1
}

// runExecutor invokes the executor with panic recovery so a broken
// executor surfaces as a coded error instead of tearing the caller
// down.
func (m *Manager) runExecutor(ctx context.Context, parsed git.ParsedCommand) (res git.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("executor panic on %q: %v", parsed.Name, r)
		}
	}()
	res = m.executor(ctx, parsed, m.state)
	return res, nil
}

// Validate runs the structural checks a command must pass before it
// reaches the executor. Semantic problems (unknown branch, bad
// revision) are the executor's to report.
func Validate(cmd Command) Validation {
	v := Validation{Valid: true}
	if strings.TrimSpace(cmd.ID) == "" {
		v.Valid = false
		v.Errors = append(v.Errors, "command id is required")
	}
	if strings.TrimSpace(cmd.Type) == "" {
		v.Valid = false
		v.Errors = append(v.Errors, "command type is required")
	}
	if cmd.Metadata.Timestamp.IsZero() {
		v.Warnings = append(v.Warnings, "command carries no timestamp")
	}
	return v
}

// describe renders a command for step messages: the type plus its
// first positional argument when present.
func describe(cmd Command) string {
	if arg, ok := cmd.Parameters["arg0"]; ok {
		return cmd.Type + " " + arg
	}
	return cmd.Type
}
