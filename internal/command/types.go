package command

import (
	"time"

	"github.com/gitscape/gitscape/internal/git"
)

// Command is the outer surface callers construct: a typed request with
// parameters, identity and bookkeeping metadata.
type Command struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Metadata   Metadata          `json:"metadata"`
	Preview    bool              `json:"preview,omitempty"`
}

// Metadata travels with a command through history and events.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

// ErrorCode classifies where in the pipeline a command failed.
type ErrorCode string

const (
	// ValidationError: malformed command, rejected before the executor.
	ValidationError ErrorCode = "VALIDATION_ERROR"
	// ExecutionError: the executor reported a domain failure.
	ExecutionError ErrorCode = "EXECUTION_ERROR"
	// UnexpectedError: a panic escaped the executor.
	UnexpectedError ErrorCode = "UNEXPECTED_ERROR"
)

// ExecError is one coded failure attached to an ExecutionResult.
type ExecError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e ExecError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ExecutionResult is the rich answer to one Execute call. State is the
// manager's current state after the call: the new state on an applied
// success, the untouched previous state otherwise.
type ExecutionResult struct {
	Success    bool        `json:"success"`
	Command    Command     `json:"command"`
	Changes    []Change    `json:"changes,omitempty"`
	State      *git.State  `json:"-"`
	Output     string      `json:"output,omitempty"`
	Message    string      `json:"message,omitempty"`
	Errors     []ExecError `json:"errors,omitempty"`
	ExecutedAt time.Time   `json:"executedAt"`
}

// HistoryEntry pairs a command with the states around it. Before and
// After are immutable snapshots; restoring either is always safe.
type HistoryEntry struct {
	Before  *git.State       `json:"-"`
	After   *git.State       `json:"-"`
	Command Command          `json:"command"`
	Result  *ExecutionResult `json:"result"`
}

// SequenceResult reports a batch run. FailedAt is the index of the
// command that stopped the sequence, -1 when every command applied.
type SequenceResult struct {
	Results  []*ExecutionResult `json:"results"`
	State    *git.State         `json:"-"`
	Success  bool               `json:"success"`
	FailedAt int                `json:"failedAt"`
}

// StepResult reports an undo or redo outcome. Success false means
// "nothing to do": empty stack or unknown command id.
type StepResult struct {
	Success bool       `json:"success"`
	Command *Command   `json:"command,omitempty"`
	State   *git.State `json:"-"`
	Message string     `json:"message"`
}

// Validation is the outcome of the structural checks that run before a
// command reaches the executor.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
