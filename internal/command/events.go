package command

import (
	"time"

	"github.com/gitscape/gitscape/internal/git"
)

// EventType names the notifications a Manager emits.
type EventType string

const (
	// CommandExecuted fires after a successful non-preview execute.
	CommandExecuted EventType = "CommandExecuted"
	// CommandUndone fires after a successful undo.
	CommandUndone EventType = "CommandUndone"
	// StateChanged fires whenever the current state pointer moves:
	// execute, undo, redo and restore.
	StateChanged EventType = "StateChanged"
)

// Event is one notification. Command is set for CommandExecuted and
// CommandUndone, Result only for CommandExecuted. State is the
// manager's current state at emit time.
type Event struct {
	Type    EventType        `json:"type"`
	Command *Command         `json:"command,omitempty"`
	Result  *ExecutionResult `json:"result,omitempty"`
	State   *git.State       `json:"-"`
	At      time.Time        `json:"at"`
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every future event and returns the
// matching unsubscribe function. Handlers run synchronously on the
// executing goroutine, in registration order.
func (m *Manager) Subscribe(fn func(Event)) func() {
	id := m.nextSub
	m.nextSub++
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) emit(ev Event) {
	ev.At = m.now()
	ev.State = m.state
	// snapshot so a handler may unsubscribe mid-emit
	for _, s := range append([]subscriber(nil), m.subs...) {
		s.fn(ev)
	}
}
