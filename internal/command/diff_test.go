package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitscape/gitscape/internal/git"
)

func TestDiffNoChanges(t *testing.T) {
	st := git.NewState()
	assert.Empty(t, Diff(st, st))
	assert.Empty(t, Diff(st, st.Clone()))
}

func TestDiffCommitAndBranchMove(t *testing.T) {
	e := git.NewEngine()
	before := e.InitialState()
	res := e.Execute(git.ParsedCommand{Name: "commit", Options: map[string]string{"m": "change"}}, before)
	require.True(t, res.Success)

	changes := Diff(before, res.NewState)

	require.Len(t, changes, 2)
	assert.Equal(t, CommitAdded, changes[0].Kind)
	head, _ := res.NewState.HeadTarget()
	assert.Equal(t, head, changes[0].CommitID)
	assert.Equal(t, BranchMoved, changes[1].Kind)
	assert.Equal(t, "main", changes[1].Name)
	assert.Equal(t, head, changes[1].To)
}

func TestDiffCommitsInCreationOrder(t *testing.T) {
	e := git.NewEngine()
	before := e.InitialState()
	st := before
	var want []string
	for _, msg := range []string{"one", "two", "three"} {
		res := e.Execute(git.ParsedCommand{Name: "commit", Options: map[string]string{"m": msg}}, st)
		require.True(t, res.Success)
		st = res.NewState
		id, _ := st.HeadTarget()
		want = append(want, id)
	}

	changes := Diff(before, st)

	var added []string
	for _, c := range changes {
		if c.Kind == CommitAdded {
			added = append(added, c.CommitID)
		}
	}
	assert.Equal(t, want, added)
}

func TestDiffBranchLifecycle(t *testing.T) {
	base := git.NewState()
	root, _ := base.HeadTarget()

	created := base.Clone()
	created.Branches["feature"] = git.Branch{Name: "feature", Target: root}
	changes := Diff(base, created)
	require.Len(t, changes, 1)
	assert.Equal(t, BranchCreated, changes[0].Kind)
	assert.Equal(t, "feature", changes[0].Name)
	assert.Equal(t, root, changes[0].To)

	deleted := created.Clone()
	delete(deleted.Branches, "feature")
	changes = Diff(created, deleted)
	require.Len(t, changes, 1)
	assert.Equal(t, BranchDeleted, changes[0].Kind)
	assert.Equal(t, root, changes[0].From)
}

func TestDiffTagLifecycle(t *testing.T) {
	base := git.NewState()
	root, _ := base.HeadTarget()

	tagged := base.Clone()
	tagged.Tags["v1.0"] = git.Tag{Name: "v1.0", Target: root}
	changes := Diff(base, tagged)
	require.Len(t, changes, 1)
	assert.Equal(t, TagCreated, changes[0].Kind)
	assert.Equal(t, "v1.0", changes[0].Name)

	untagged := tagged.Clone()
	delete(untagged.Tags, "v1.0")
	changes = Diff(tagged, untagged)
	require.Len(t, changes, 1)
	assert.Equal(t, TagDeleted, changes[0].Kind)
}

func TestDiffHeadMoves(t *testing.T) {
	t.Run("switching branches", func(t *testing.T) {
		base := git.NewState()
		root, _ := base.HeadTarget()
		after := base.Clone()
		after.Branches["feature"] = git.Branch{Name: "feature", Target: root}
		after.Head = git.BranchHead("feature")

		changes := Diff(base, after)

		require.Len(t, changes, 2) // branch-created plus head-moved
		assert.Equal(t, HeadMoved, changes[1].Kind)
		assert.Equal(t, "main", changes[1].From)
		assert.Equal(t, "feature", changes[1].To)
	})

	t.Run("detaching", func(t *testing.T) {
		base := git.NewState()
		root, _ := base.HeadTarget()
		after := base.Clone()
		after.Head = git.DetachedHead(root)

		changes := Diff(base, after)

		require.Len(t, changes, 1)
		assert.Equal(t, HeadMoved, changes[0].Kind)
		assert.Equal(t, "main", changes[0].From)
		assert.Equal(t, root, changes[0].To)
	})

	t.Run("branch advance alone is not a head move", func(t *testing.T) {
		e := git.NewEngine()
		before := e.InitialState()
		res := e.Execute(git.ParsedCommand{Name: "commit", Options: map[string]string{"m": "x"}}, before)
		require.True(t, res.Success)

		for _, c := range Diff(before, res.NewState) {
			assert.NotEqual(t, HeadMoved, c.Kind)
		}
	})
}

func TestDiffSortsRefNames(t *testing.T) {
	base := git.NewState()
	root, _ := base.HeadTarget()
	after := base.Clone()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		after.Branches[name] = git.Branch{Name: name, Target: root}
	}

	changes := Diff(base, after)

	require.Len(t, changes, 3)
	assert.Equal(t, "alpha", changes[0].Name)
	assert.Equal(t, "mid", changes[1].Name)
	assert.Equal(t, "zeta", changes[2].Name)
}
