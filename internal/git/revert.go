package git

// revert.go - Simulated Revert
//
// Mints a commit recording that an earlier one was reverted. Content
// inversion is not modeled; the new commit carries the marker message
// only. Merge commits are refused without a mainline, like git.

import "fmt"

func (e *Engine) revert(cmd ParsedCommand, st *State) Result {
	rev, ok := cmd.arg(0)
	if !ok {
		return fail("usage: git revert <commit>")
	}
	id, err := ResolveCommit(st, rev)
	if err != nil {
		return fail("fatal: bad revision '%s'", rev)
	}
	src := st.Commits[id]
	if src.IsMerge() {
		return fail("error: commit %s is a merge but no -m option was given", shortID(id))
	}
	head, ok := st.HeadCommit()
	if !ok {
		return fail("fatal: HEAD does not point at a commit")
	}

	msg := fmt.Sprintf("Revert \"%s\"\n\nThis reverts commit %s.", src.Subject(), src.ID)
	next := st.Clone()
	c := e.addCommit(next, []string{head.ID}, msg, "")
	next.advanceHead(c.ID)
	return success(next, "[%s %s] %s", headLabel(next.Head), c.ID, c.Subject())
}
