// runner.go - Scenario Lifecycle
//
// Runner wires scenarios to sessions: Start resets a session, replays
// the setup commands and seals them off from undo; Verify evaluates the
// checks against the session's current state.

package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitscape/gitscape/internal/command"
	"github.com/gitscape/gitscape/internal/git"
	"github.com/gitscape/gitscape/internal/state"
)

type Runner struct {
	Loader   *Loader
	Sessions *state.SessionManager
}

func NewRunner(loader *Loader, sessions *state.SessionManager) *Runner {
	return &Runner{Loader: loader, Sessions: sessions}
}

// Start prepares a session for the scenario. The session is reset to
// the initial state, the setup commands run in order, and the history
// stacks are cleared afterwards so the learner cannot undo the setup.
func (r *Runner) Start(ctx context.Context, scenarioID, sessionID string) (*state.Session, *Scenario, error) {
	sc, err := r.Loader.Load(scenarioID)
	if err != nil {
		return nil, nil, err
	}

	sess := r.Sessions.CreateSession(sessionID)
	sess.Lock()
	defer sess.Unlock()

	if err := sess.Commands.Restore(r.Sessions.InitialState()); err != nil {
		return nil, nil, fmt.Errorf("reset session: %w", err)
	}

	cmds := make([]command.Command, 0, len(sc.Setup))
	for _, line := range sc.Setup {
		cmd, err := command.Parse(line)
		if err != nil {
			return nil, nil, fmt.Errorf("setup line %q: %w", line, err)
		}
		cmds = append(cmds, cmd)
	}
	if seq := sess.Commands.ExecuteSequence(ctx, cmds); !seq.Success {
		res := seq.Results[seq.FailedAt]
		return nil, nil, fmt.Errorf("setup failed at '%s': %s", sc.Setup[seq.FailedAt], res.Errors[0].Message)
	}

	if err := sess.Commands.Restore(sess.Commands.State()); err != nil {
		return nil, nil, fmt.Errorf("seal setup: %w", err)
	}
	return sess, sc, nil
}

// VerificationResult reports check-by-check progress.
type VerificationResult struct {
	Success    bool          `json:"success"`
	ScenarioID string        `json:"scenarioId"`
	Progress   []CheckResult `json:"progress"`
}

type CheckResult struct {
	Description string `json:"description"`
	Passed      bool   `json:"passed"`
}

// Verify evaluates the scenario's checks against the session state.
func (r *Runner) Verify(scenarioID, sessionID string) (*VerificationResult, error) {
	sc, err := r.Loader.Load(scenarioID)
	if err != nil {
		return nil, err
	}
	sess, ok := r.Sessions.GetSession(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	sess.RLock()
	st := sess.Commands.State()
	sess.RUnlock()

	out := &VerificationResult{Success: true, ScenarioID: sc.ID}
	for _, check := range sc.Validation.Checks {
		passed := evalCheck(st, check)
		out.Progress = append(out.Progress, CheckResult{Description: check.Description, Passed: passed})
		if !passed {
			out.Success = false
		}
	}
	return out, nil
}

// evalCheck runs one check. Unknown check types fail closed so a typo
// in a scenario file cannot silently pass.
func evalCheck(st *git.State, c Check) bool {
	var passed bool
	switch c.Type {
	case "commit_message":
		for _, commit := range st.Commits {
			if strings.Contains(commit.Message, c.MessagePattern) {
				passed = true
				break
			}
		}
	case "merge_commit_exists":
		for _, commit := range st.Commits {
			if !commit.IsMerge() {
				continue
			}
			if c.MessagePattern == "" || strings.Contains(commit.Message, c.MessagePattern) {
				passed = true
				break
			}
		}
	case "branch_exists":
		_, passed = st.Branches[c.Name]
	case "branch_at":
		b, ok := st.Branches[c.Name]
		if ok {
			want, err := git.ResolveCommit(st, c.Revision)
			passed = err == nil && b.Target == want
		}
	case "current_branch":
		b, ok := st.CurrentBranch()
		passed = ok && b.Name == c.Name
	case "head_detached":
		passed = st.Head.Detached()
	case "tag_exists":
		_, passed = st.Tags[c.Name]
	}
	if c.Negate {
		passed = !passed
	}
	return passed
}
