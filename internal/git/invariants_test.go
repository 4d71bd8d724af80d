package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAcceptsEngineStates(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()
	require.NoError(t, Check(st))

	st = doCommit(t, e, st, "A")
	st = doBranch(t, e, st, "feature")
	st = doCheckout(t, e, st, "feature")
	st = doCommit(t, e, st, "B")
	require.NoError(t, Check(st))
}

func TestCheckRejectsBrokenStates(t *testing.T) {
	base := func() *State {
		return buildState(
			Commit{ID: "r", Seq: 0},
			Commit{ID: "a", Parents: []string{"r"}, Seq: 1},
		)
	}

	t.Run("nil state", func(t *testing.T) {
		assert.Error(t, Check(nil))
	})

	t.Run("empty state", func(t *testing.T) {
		st := base()
		st.Commits = map[string]Commit{}
		st.Head = Head{}
		assert.Error(t, Check(st))
	})

	t.Run("dangling parent", func(t *testing.T) {
		st := base()
		st.Commits["b"] = Commit{ID: "b", Parents: []string{"ghost"}, Seq: 2}
		assert.ErrorContains(t, Check(st), "parent ghost not in state")
	})

	t.Run("parent does not predate child", func(t *testing.T) {
		st := base()
		st.Commits["b"] = Commit{ID: "b", Parents: []string{"a"}, Seq: 1}
		assert.Error(t, Check(st))
	})

	t.Run("duplicate creation stamp", func(t *testing.T) {
		st := base()
		st.Commits["b"] = Commit{ID: "b", Seq: 0}
		assert.ErrorContains(t, Check(st), "share creation stamp")
	})

	t.Run("mismatched commit key", func(t *testing.T) {
		st := base()
		st.Commits["b"] = Commit{ID: "not-b", Seq: 2}
		assert.Error(t, Check(st))
	})

	t.Run("branch targets unknown commit", func(t *testing.T) {
		st := base()
		st.Branches["dev"] = Branch{Name: "dev", Target: "ghost"}
		assert.ErrorContains(t, Check(st), "unknown commit")
	})

	t.Run("tag targets unknown commit", func(t *testing.T) {
		st := base()
		st.Tags["v1"] = Tag{Name: "v1", Target: "ghost"}
		assert.Error(t, Check(st))
	})

	t.Run("HEAD attached to unknown branch", func(t *testing.T) {
		st := base()
		st.Head = BranchHead("nope")
		assert.Error(t, Check(st))
	})

	t.Run("HEAD detached at unknown commit", func(t *testing.T) {
		st := base()
		st.Head = DetachedHead("ghost")
		assert.Error(t, Check(st))
	})

	t.Run("HEAD both attached and detached", func(t *testing.T) {
		st := base()
		st.Branches["dev"] = Branch{Name: "dev", Target: "a"}
		st.Head = Head{Branch: "dev", Commit: "a"}
		assert.Error(t, Check(st))
	})

	t.Run("HEAD unset", func(t *testing.T) {
		st := base()
		st.Head = Head{}
		assert.Error(t, Check(st))
	})
}

func TestCloneIsolation(t *testing.T) {
	e := newTestEngine()
	st := e.InitialState()
	st = doCommit(t, e, st, "A")

	clone := st.Clone()
	clone.Branches["extra"] = Branch{Name: "extra", Target: clone.Branches["main"].Target}
	clone.Staging["file.txt"] = struct{}{}
	delete(clone.Commits, "nonexistent") // no-op, just exercises the map

	assert.NotContains(t, st.Branches, "extra")
	assert.Empty(t, st.Staging)
	assert.Equal(t, len(clone.Commits), len(st.Commits))
}
