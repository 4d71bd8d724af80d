package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitscape/gitscape/internal/command"
	"github.com/gitscape/gitscape/internal/git"
	"github.com/gitscape/gitscape/internal/state"
)

const mergeScenarioYAML = `
id: merge-drill
title: Merge the feature branch
setup:
  - git commit -m "Base work"
  - git checkout -b feature
  - git commit -m "Feature work"
  - git checkout main
  - git commit -m "Main work"
validation:
  checks:
    - type: merge_commit_exists
      description: a merge commit exists
    - type: current_branch
      name: main
      description: back on main
`

func newTestRunner(t *testing.T, files map[string]string) *Runner {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeScenario(t, dir, name, content)
	}
	return NewRunner(NewLoader(dir), state.NewSessionManager(git.NewEngine(), 0))
}

// exec runs one line in the session under its lock.
func exec(t *testing.T, sess *state.Session, line string) *command.ExecutionResult {
	t.Helper()
	cmd, err := command.Parse(line)
	require.NoError(t, err)
	sess.Lock()
	defer sess.Unlock()
	res := sess.Commands.Execute(context.Background(), cmd)
	require.Truef(t, res.Success, "%s: %v", line, res.Errors)
	return res
}

func TestStartBuildsSetupState(t *testing.T) {
	r := newTestRunner(t, map[string]string{"merge-drill.yaml": mergeScenarioYAML})

	sess, sc, err := r.Start(context.Background(), "merge-drill", "learner")
	require.NoError(t, err)
	assert.Equal(t, "merge-drill", sc.ID)

	st := sess.Commands.State()
	require.NoError(t, git.Check(st))
	assert.Len(t, st.Commits, 4) // root plus three setup commits
	assert.Contains(t, st.Branches, "feature")
	b, ok := st.CurrentBranch()
	require.True(t, ok)
	assert.Equal(t, "main", b.Name)
}

func TestStartSealsSetupFromUndo(t *testing.T) {
	r := newTestRunner(t, map[string]string{"merge-drill.yaml": mergeScenarioYAML})

	sess, _, err := r.Start(context.Background(), "merge-drill", "learner")
	require.NoError(t, err)

	assert.False(t, sess.Commands.CanUndo(), "setup commands must not be undoable")
	assert.Empty(t, sess.Commands.History())
}

func TestStartResetsAnExistingSession(t *testing.T) {
	r := newTestRunner(t, map[string]string{"merge-drill.yaml": mergeScenarioYAML})

	sess, _, err := r.Start(context.Background(), "merge-drill", "learner")
	require.NoError(t, err)
	exec(t, sess, "commit -m 'stray work'")
	require.Len(t, sess.Commands.State().Commits, 5)

	again, _, err := r.Start(context.Background(), "merge-drill", "learner")
	require.NoError(t, err)

	assert.Same(t, sess, again, "same session id is reused")
	assert.Len(t, again.Commands.State().Commits, 4, "stray work is wiped by the reset")
}

func TestStartUnknownScenario(t *testing.T) {
	r := newTestRunner(t, nil)
	_, _, err := r.Start(context.Background(), "ghost", "learner")
	assert.Error(t, err)
}

func TestStartReportsFailingSetupLine(t *testing.T) {
	r := newTestRunner(t, map[string]string{"bad.yaml": `
id: bad
title: Broken setup
setup:
  - git commit -m "ok"
  - git checkout nowhere
validation:
  checks: []
`})

	_, _, err := r.Start(context.Background(), "bad", "learner")
	require.Error(t, err)
	assert.ErrorContains(t, err, "setup failed at 'git checkout nowhere'")
}

func TestVerify(t *testing.T) {
	r := newTestRunner(t, map[string]string{"merge-drill.yaml": mergeScenarioYAML})
	sess, _, err := r.Start(context.Background(), "merge-drill", "learner")
	require.NoError(t, err)

	before, err := r.Verify("merge-drill", "learner")
	require.NoError(t, err)
	assert.False(t, before.Success)
	require.Len(t, before.Progress, 2)
	assert.False(t, before.Progress[0].Passed, "no merge commit yet")
	assert.True(t, before.Progress[1].Passed, "already on main")

	exec(t, sess, "merge feature")

	after, err := r.Verify("merge-drill", "learner")
	require.NoError(t, err)
	assert.True(t, after.Success)
	for _, p := range after.Progress {
		assert.True(t, p.Passed, p.Description)
	}
}

func TestVerifyUnknownSession(t *testing.T) {
	r := newTestRunner(t, map[string]string{"merge-drill.yaml": mergeScenarioYAML})
	_, err := r.Verify("merge-drill", "nobody")
	assert.ErrorContains(t, err, "session nobody not found")
}

func TestEvalCheck(t *testing.T) {
	e := git.NewEngine()
	st := e.InitialState()
	apply := func(name string, args []string, opts map[string]string) {
		res := e.Execute(git.ParsedCommand{Name: name, Args: args, Options: opts}, st)
		require.True(t, res.Success, res.Err)
		st = res.NewState
	}
	apply("commit", nil, map[string]string{"m": "Fix the login flow"})
	apply("tag", []string{"v1.0"}, nil)
	apply("checkout", nil, map[string]string{"b": "feature"})

	cases := []struct {
		name  string
		check Check
		want  bool
	}{
		{"commit message hit", Check{Type: "commit_message", MessagePattern: "login flow"}, true},
		{"commit message miss", Check{Type: "commit_message", MessagePattern: "logout"}, false},
		{"negated miss passes", Check{Type: "commit_message", MessagePattern: "logout", Negate: true}, true},
		{"branch exists", Check{Type: "branch_exists", Name: "feature"}, true},
		{"branch missing", Check{Type: "branch_exists", Name: "release"}, false},
		{"branch at tag", Check{Type: "branch_at", Name: "main", Revision: "v1.0"}, true},
		{"branch at wrong rev", Check{Type: "branch_at", Name: "main", Revision: "v1.0~1"}, false},
		{"branch at bad rev", Check{Type: "branch_at", Name: "main", Revision: "v9"}, false},
		{"current branch", Check{Type: "current_branch", Name: "feature"}, true},
		{"head not detached", Check{Type: "head_detached"}, false},
		{"tag exists", Check{Type: "tag_exists", Name: "v1.0"}, true},
		{"no merge commit", Check{Type: "merge_commit_exists"}, false},
		{"unknown type fails closed", Check{Type: "file_contains"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, evalCheck(st, tc.check))
		})
	}
}

func TestEvalCheckMergeCommit(t *testing.T) {
	e := git.NewEngine()
	st := e.InitialState()
	apply := func(name string, args []string, opts map[string]string) {
		res := e.Execute(git.ParsedCommand{Name: name, Args: args, Options: opts}, st)
		require.True(t, res.Success, res.Err)
		st = res.NewState
	}
	apply("commit", nil, map[string]string{"m": "base"})
	apply("checkout", nil, map[string]string{"b": "side"})
	apply("commit", nil, map[string]string{"m": "side work"})
	apply("checkout", []string{"main"}, nil)
	apply("commit", nil, map[string]string{"m": "main work"})
	apply("merge", []string{"side"}, nil)

	assert.True(t, evalCheck(st, Check{Type: "merge_commit_exists"}))
	assert.True(t, evalCheck(st, Check{Type: "merge_commit_exists", MessagePattern: "branch 'side'"}))
	assert.False(t, evalCheck(st, Check{Type: "merge_commit_exists", MessagePattern: "branch 'other'"}))
}
