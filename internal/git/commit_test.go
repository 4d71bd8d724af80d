package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitOnBranch(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()
	root, _ := st.HeadCommit()

	res := e.Execute(ParsedCommand{Name: "commit", Options: map[string]string{"m": "feat: add endpoint"}}, st)
	require.True(t, res.Success, res.Err)
	next := res.NewState

	tip := tipOf(t, next, "main")
	assert.Equal(t, []string{root.ID}, tip.Parents)
	assert.Equal(t, "feat: add endpoint", tip.Message)
	assert.Contains(t, res.Message, "[main "+tip.ID+"]")

	// The old state still points at the root.
	assert.Equal(t, root.ID, st.Branches["main"].Target)
}

func TestCommitRequiresMessage(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()

	res := execErr(t, e, st, ParsedCommand{Name: "commit"})
	assert.Contains(t, res.Err, "message is required")
}

func TestCommitDetachedMovesOnlyHead(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()
	st = doCommit(t, e, st, "A")
	c1 := tipOf(t, st, "main")

	// Detach at C1, then commit: main must not move.
	st = doCheckout(t, e, st, c1.ID)
	require.True(t, st.Head.Detached())

	st = doCommit(t, e, st, "loose work")
	loose, ok := st.HeadCommit()
	require.True(t, ok)
	assert.Equal(t, []string{c1.ID}, loose.Parents)
	assert.Equal(t, c1.ID, st.Branches["main"].Target)
	assert.True(t, st.Head.Detached())
}

func TestCommitAmend(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()
	root, _ := st.HeadCommit()
	st = doCommit(t, e, st, "first wording")
	old := tipOf(t, st, "main")

	// 1. Amend with a new message: same parents, fresh id.
	st = exec(t, e, st, ParsedCommand{
		Name:    "commit",
		Options: map[string]string{"m": "second wording", "amend": "true"},
	})
	amended := tipOf(t, st, "main")
	assert.NotEqual(t, old.ID, amended.ID)
	assert.Equal(t, []string{root.ID}, amended.Parents)
	assert.Equal(t, "second wording", amended.Message)

	// 2. The replaced tip stays in the map, unreachable from main.
	_, stillThere := st.Commits[old.ID]
	assert.True(t, stillThere)
	assert.False(t, ReachableFrom(st, amended.ID)[old.ID])

	// 3. Amend without -m keeps the message.
	st = exec(t, e, st, ParsedCommand{Name: "commit", Options: map[string]string{"amend": "true"}})
	assert.Equal(t, "second wording", tipOf(t, st, "main").Message)
}

func TestCommitClearsStaging(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()

	st = exec(t, e, st, ParsedCommand{Name: "add", Args: []string{"a.txt", "b.txt"}})
	require.Len(t, st.Staging, 2)

	st = doCommit(t, e, st, "commit staged work")
	assert.Empty(t, st.Staging)
}
