package state

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitscape/gitscape/internal/command"
	"github.com/gitscape/gitscape/internal/git"
)

func TestCreateSession(t *testing.T) {
	sm := NewSessionManager(nil, 0)

	s := sm.CreateSession("alice")
	require.NotNil(t, s)
	assert.Equal(t, "alice", s.ID)
	assert.False(t, s.CreatedAt.IsZero())
	require.NotNil(t, s.Commands)

	head, ok := s.Commands.State().HeadCommit()
	require.True(t, ok)
	assert.Equal(t, "Initial commit", head.Message)
}

func TestCreateSessionIsIdempotent(t *testing.T) {
	sm := NewSessionManager(nil, 0)
	first := sm.CreateSession("shared")
	second := sm.CreateSession("shared")
	assert.Same(t, first, second)
	assert.Equal(t, 1, sm.Count())
}

func TestCreateSessionGeneratesID(t *testing.T) {
	sm := NewSessionManager(nil, 0)
	a := sm.CreateSession("")
	b := sm.CreateSession("")
	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, sm.Count())
}

func TestGetAndRemoveSession(t *testing.T) {
	sm := NewSessionManager(nil, 0)
	sm.CreateSession("here")

	s, ok := sm.GetSession("here")
	require.True(t, ok)
	assert.Equal(t, "here", s.ID)

	_, ok = sm.GetSession("missing")
	assert.False(t, ok)

	sm.RemoveSession("here")
	_, ok = sm.GetSession("here")
	assert.False(t, ok)
	sm.RemoveSession("here") // removing twice is fine
	assert.Equal(t, 0, sm.Count())
}

func TestSessionsAreIsolated(t *testing.T) {
	sm := NewSessionManager(nil, 0)
	a := sm.CreateSession("a")
	b := sm.CreateSession("b")

	cmd, err := command.Parse("commit -m 'only in a'")
	require.NoError(t, err)
	a.Lock()
	res := a.Commands.Execute(context.Background(), cmd)
	a.Unlock()
	require.True(t, res.Success)

	assert.Len(t, a.Commands.State().Commits, 2)
	assert.Len(t, b.Commands.State().Commits, 1)
}

func TestConcurrentSessionAccess(t *testing.T) {
	sm := NewSessionManager(git.NewEngine(), 0)
	s := sm.CreateSession("busy")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				cmd, err := command.Parse("commit -m work")
				if err != nil {
					t.Error(err)
					return
				}
				s.Lock()
				s.Commands.Execute(context.Background(), cmd)
				s.Unlock()
				s.Graph()
			}
		}()
	}
	wg.Wait()

	require.NoError(t, git.Check(s.Commands.State()))
	assert.Len(t, s.Commands.State().Commits, 41)
}
