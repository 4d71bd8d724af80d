package state

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gitscape/gitscape/internal/command"
	"github.com/gitscape/gitscape/internal/git"
)

// Session holds one user's simulated repository: a command manager plus
// the lock that serializes access to it. The manager itself is not
// concurrency-safe, so every caller takes the session lock first.
type Session struct {
	ID        string
	Commands  *command.Manager
	CreatedAt time.Time
	mu        sync.RWMutex
}

// Lock locks the session for writing.
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock unlocks the session.
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// RLock locks the session for reading.
func (s *Session) RLock() {
	s.mu.RLock()
}

// RUnlock unlocks the session for reading.
func (s *Session) RUnlock() {
	s.mu.RUnlock()
}

// Graph renders the session's current state for the API under the read
// lock.
func (s *Session) Graph() GraphState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildGraph(s.Commands)
}

// SessionManager handles concurrent access to sessions.
type SessionManager struct {
	engine   *git.Engine
	limit    int
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewSessionManager builds a manager whose sessions start from the
// engine's initial state with the given history limit.
func NewSessionManager(engine *git.Engine, historyLimit int) *SessionManager {
	if engine == nil {
		engine = git.NewEngine()
	}
	return &SessionManager{
		engine:   engine,
		limit:    historyLimit,
		sessions: make(map[string]*Session),
	}
}

// CreateSession initializes a session under id, or returns the existing
// one. An empty id gets a fresh uuid.
func (sm *SessionManager) CreateSession(id string) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if s, exists := sm.sessions[id]; exists {
		return s
	}
	s := &Session{
		ID:        id,
		Commands:  command.NewManager(command.EngineExecutor(sm.engine), sm.engine.InitialState(), sm.limit),
		CreatedAt: time.Now(),
	}
	sm.sessions[id] = s
	return s
}

// InitialState builds a fresh starting state from the manager's engine.
func (sm *SessionManager) InitialState() *git.State {
	return sm.engine.InitialState()
}

// GetSession retrieves a session by ID.
func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	return s, ok
}

// RemoveSession drops a session. Removing an unknown id is a no-op.
func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, id)
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
