package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testClock ticks one second per call so every commit gets a distinct,
// deterministic timestamp.
func testClock() func() time.Time {
	t := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestEngine() *Engine {
	return &Engine{Author: "Tester <tester@example.com>", Branch: "main", Now: testClock()}
}

// exec runs a command that must succeed, checks the graph invariants on
// the result and returns the new state.
func exec(t *testing.T, e *Engine, st *State, cmd ParsedCommand) *State {
	t.Helper()
	res := e.Execute(cmd, st)
	require.True(t, res.Success, "%s failed: %s", cmd.Name, res.Err)
	require.NotNil(t, res.NewState)
	require.NoError(t, Check(res.NewState))
	return res.NewState
}

// execErr runs a command that must fail and returns the result.
func execErr(t *testing.T, e *Engine, st *State, cmd ParsedCommand) Result {
	t.Helper()
	res := e.Execute(cmd, st)
	require.False(t, res.Success, "%s unexpectedly succeeded", cmd.Name)
	require.NotEmpty(t, res.Err)
	require.Nil(t, res.NewState)
	return res
}

func doCommit(t *testing.T, e *Engine, st *State, msg string) *State {
	t.Helper()
	return exec(t, e, st, ParsedCommand{
		Name:    "commit",
		Options: map[string]string{"m": msg},
	})
}

func doCheckout(t *testing.T, e *Engine, st *State, ref string) *State {
	t.Helper()
	return exec(t, e, st, ParsedCommand{Name: "checkout", Args: []string{ref}})
}

func doBranch(t *testing.T, e *Engine, st *State, name string) *State {
	t.Helper()
	return exec(t, e, st, ParsedCommand{Name: "branch", Args: []string{name}})
}

// tipOf returns the commit a branch points at.
func tipOf(t *testing.T, st *State, branch string) Commit {
	t.Helper()
	b, ok := st.Branches[branch]
	require.True(t, ok, "branch %s missing", branch)
	c, ok := st.Commits[b.Target]
	require.True(t, ok, "branch %s targets missing commit %s", branch, b.Target)
	return c
}
