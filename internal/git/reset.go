package git

// reset.go - Simulated Reset
//
// Moves the checked-out ref (and HEAD with it) to a target commit
// without minting anything. --soft keeps the staged set; --mixed and
// --hard clear it. No working tree exists to touch.

type resetMode int

const (
	resetMixed resetMode = iota
	resetSoft
	resetHard
)

func parseResetMode(cmd ParsedCommand) resetMode {
	switch {
	case cmd.optBool("soft"):
		return resetSoft
	case cmd.optBool("hard"):
		return resetHard
	default:
		return resetMixed
	}
}

func (e *Engine) reset(cmd ParsedCommand, st *State) Result {
	mode := parseResetMode(cmd)
	targetRev := "HEAD"
	if rev, ok := cmd.arg(0); ok {
		targetRev = rev
	}

	id, err := ResolveCommit(st, targetRev)
	if err != nil {
		return fail("fatal: ambiguous argument '%s': unknown revision", targetRev)
	}

	next := st.Clone()
	next.advanceHead(id)
	if mode != resetSoft {
		clearStaging(next)
	}
	return success(next, "HEAD is now at %s %s", shortID(id), next.Commits[id].Subject())
}
