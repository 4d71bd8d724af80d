package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutBranch(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()
	st = doCommit(t, e, st, "A")
	st = doBranch(t, e, st, "feature")

	res := e.Execute(ParsedCommand{Name: "checkout", Args: []string{"feature"}}, st)
	require.True(t, res.Success, res.Err)
	assert.Equal(t, "Switched to branch 'feature'", res.Message)
	assert.Equal(t, "feature", res.NewState.Head.Branch)

	// Checking out the current branch changes nothing.
	res = e.Execute(ParsedCommand{Name: "checkout", Args: []string{"feature"}}, res.NewState)
	require.True(t, res.Success)
	assert.Equal(t, "Already on 'feature'", res.Message)
}

func TestCheckoutDetaches(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()
	st = doCommit(t, e, st, "A")
	c1 := tipOf(t, st, "main")

	// 1. By full id.
	res := e.Execute(ParsedCommand{Name: "checkout", Args: []string{c1.ID}}, st)
	require.True(t, res.Success, res.Err)
	next := res.NewState
	assert.True(t, next.Head.Detached())
	assert.Equal(t, c1.ID, next.Head.Commit)
	assert.Contains(t, res.Message, "detached HEAD")

	// 2. By ~ suffix from the detached position.
	next = doCheckout(t, e, next, "HEAD~1")
	root, _ := next.HeadCommit()
	assert.Empty(t, root.Parents)

	// 3. By tag.
	st = exec(t, e, st, ParsedCommand{Name: "tag", Args: []string{"v1", c1.ID}})
	next = doCheckout(t, e, st, "v1")
	assert.True(t, next.Head.Detached())
	assert.Equal(t, c1.ID, next.Head.Commit)
}

func TestCheckoutNewBranch(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()
	st = doCommit(t, e, st, "A")
	tip := tipOf(t, st, "main")

	st = exec(t, e, st, ParsedCommand{Name: "checkout", Options: map[string]string{"b": "feature"}})
	assert.Equal(t, "feature", st.Head.Branch)
	assert.Equal(t, tip.ID, st.Branches["feature"].Target)

	// With a start point.
	st = exec(t, e, st, ParsedCommand{
		Name:    "checkout",
		Args:    []string{"HEAD~1"},
		Options: map[string]string{"b": "from-root"},
	})
	root, err := ResolveCommit(st, "from-root")
	require.NoError(t, err)
	assert.Empty(t, st.Commits[root].Parents)
	assert.Equal(t, "from-root", st.Head.Branch)

	res := execErr(t, e, st, ParsedCommand{Name: "checkout", Options: map[string]string{"b": "feature"}})
	assert.Contains(t, res.Err, "already exists")
}

func TestCheckoutUnknownRef(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()

	res := execErr(t, e, st, ParsedCommand{Name: "checkout", Args: []string{"nope"}})
	assert.Contains(t, res.Err, "did not match any file(s) known to git")

	res = execErr(t, e, st, ParsedCommand{Name: "checkout"})
	assert.Contains(t, res.Err, "usage")
}
