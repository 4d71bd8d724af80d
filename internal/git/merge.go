package git

// merge.go - Simulated Merge
//
// Joins another branch into the checked-out line of work. Fast-forwards
// when the current tip is an ancestor of the target tip; otherwise a
// two-parent merge commit with parents [ours, theirs], in that order.
// There is no content model, so merges never conflict.

import "fmt"

func (e *Engine) merge(cmd ParsedCommand, st *State) Result {
	targetName, ok := cmd.arg(0)
	if !ok {
		return fail("usage: git merge <branch>")
	}
	target, exists := st.Branches[targetName]
	if !exists {
		return fail("merge: %s - not something we can merge", targetName)
	}
	head, ok := st.HeadCommit()
	if !ok {
		return fail("fatal: HEAD does not point at a commit")
	}
	ours, theirs := head.ID, target.Target

	base, found := MergeBase(st, ours, theirs)
	if !found {
		return fail("fatal: refusing to merge unrelated histories")
	}

	// Their tip already reachable from ours: nothing to do.
	if base == theirs {
		return success(st, "Already up to date.")
	}

	// Our tip is the base: pointer move, no commit.
	if base == ours {
		next := st.Clone()
		next.advanceHead(theirs)
		return success(next, "Updating %s..%s\nFast-forward", shortID(ours), shortID(theirs))
	}

	into := st.Head.Branch
	if st.Head.Detached() {
		into = "HEAD"
	}
	msg := fmt.Sprintf("Merge branch '%s' into %s", targetName, into)
	if custom, hasMsg := cmd.optString("m", "message"); hasMsg {
		msg = custom
	}

	next := st.Clone()
	c := e.addCommit(next, []string{ours, theirs}, msg, "")
	next.advanceHead(c.ID)
	return success(next, "Merge made by the 'ort' strategy.\n %s", c.ID)
}
