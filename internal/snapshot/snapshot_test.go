package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitscape/gitscape/internal/git"
)

// sampleState builds a state that touches every serialized field:
// multiple branches, a tag, a remote, staged paths.
func sampleState(t *testing.T) *git.State {
	t.Helper()
	e := git.NewEngine()
	e.Author = "Tester <tester@example.com>"
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	e.Now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}

	st := e.InitialState()
	step := func(cmd git.ParsedCommand) {
		t.Helper()
		res := e.Execute(cmd, st)
		require.True(t, res.Success, res.Err)
		st = res.NewState
	}
	step(git.ParsedCommand{Name: "commit", Options: map[string]string{"m": "First change"}})
	step(git.ParsedCommand{Name: "checkout", Options: map[string]string{"b": "feature"}})
	step(git.ParsedCommand{Name: "commit", Options: map[string]string{"m": "Feature work"}})
	step(git.ParsedCommand{Name: "checkout", Args: []string{"main"}})
	step(git.ParsedCommand{Name: "tag", Args: []string{"v1.0"}})
	step(git.ParsedCommand{Name: "remote", Args: []string{"add", "origin", "https://example.com/repo.git"}})
	step(git.ParsedCommand{Name: "add", Args: []string{"src/main.go", "README.md"}})
	return st
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	st := sampleState(t)

	data, err := Encode(st)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, st, decoded)
	require.NoError(t, git.Check(decoded))
}

func TestEncodeIsDeterministic(t *testing.T) {
	st := sampleState(t)

	first, err := Encode(st)
	require.NoError(t, err)
	second, err := Encode(st.Clone())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestFromStateSortsEverything(t *testing.T) {
	snap := FromState(sampleState(t))

	assert.Equal(t, Version, snap.Version)
	for i := 1; i < len(snap.Commits); i++ {
		assert.Less(t, snap.Commits[i-1].Seq, snap.Commits[i].Seq)
	}
	require.Len(t, snap.Branches, 2)
	assert.Equal(t, "feature", snap.Branches[0].Name)
	assert.Equal(t, "main", snap.Branches[1].Name)
	assert.Equal(t, []string{"README.md", "src/main.go"}, snap.Staging)
	assert.Equal(t, HeadRecord{Type: HeadBranch, Target: "main"}, snap.Head)
}

func TestFromStateDetachedHead(t *testing.T) {
	st := sampleState(t)
	root := ""
	for _, c := range st.Commits {
		if len(c.Parents) == 0 {
			root = c.ID
		}
	}
	require.NotEmpty(t, root)
	detached := st.Clone()
	detached.Head = git.DetachedHead(root)

	snap := FromState(detached)
	assert.Equal(t, HeadRecord{Type: HeadCommit, Target: root}, snap.Head)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, detached.Head, back.Head)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	valid := FromState(sampleState(t))

	mutate := func(fn func(*Snapshot)) []byte {
		snap := *valid
		fn(&snap)
		data, err := json.Marshal(&snap)
		require.NoError(t, err)
		return data
	}

	t.Run("malformed json", func(t *testing.T) {
		_, err := Decode([]byte("{not json"))
		assert.Error(t, err)
	})
	t.Run("wrong version", func(t *testing.T) {
		_, err := Decode(mutate(func(s *Snapshot) { s.Version = 99 }))
		assert.ErrorContains(t, err, "version")
	})
	t.Run("unknown head type", func(t *testing.T) {
		_, err := Decode(mutate(func(s *Snapshot) { s.Head.Type = "symbolic" }))
		assert.ErrorContains(t, err, "head type")
	})
	t.Run("dangling branch", func(t *testing.T) {
		_, err := Decode(mutate(func(s *Snapshot) {
			s.Branches = append([]git.Branch{}, s.Branches...)
			s.Branches[0] = git.Branch{Name: "ghost", Target: "0000000"}
		}))
		assert.ErrorContains(t, err, "valid state")
	})
	t.Run("duplicate commit", func(t *testing.T) {
		_, err := Decode(mutate(func(s *Snapshot) {
			s.Commits = append(append([]git.Commit{}, s.Commits...), s.Commits[0])
		}))
		assert.ErrorContains(t, err, "duplicate commit")
	})
}
