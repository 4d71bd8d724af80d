package git

// rebase.go - Simulated Rebase
//
// Replays the commits unique to the checked-out line, oldest first, onto
// another branch's tip. Every replayed commit is fresh: new id, new
// timestamp, copied message and author. The originals stay in the commit
// map but drop out of the branch's history.

func (e *Engine) rebase(cmd ParsedCommand, st *State) Result {
	targetName, ok := cmd.arg(0)
	if !ok {
		return fail("usage: git rebase <branch>")
	}
	target, exists := st.Branches[targetName]
	if !exists {
		return fail("fatal: invalid upstream '%s'", targetName)
	}
	head, ok := st.HeadCommit()
	if !ok {
		return fail("fatal: HEAD does not point at a commit")
	}
	tip, onto := head.ID, target.Target

	base, found := MergeBase(st, tip, onto)
	if !found {
		return fail("fatal: no common ancestor found")
	}

	line := headLabel(st.Head)
	if base == tip {
		// Nothing unique on our side: adopt the target tip outright.
		if tip == onto {
			return success(st, "Current branch %s is up to date.", line)
		}
		next := st.Clone()
		next.advanceHead(onto)
		return success(next, "Fast-forwarded %s to %s.", line, targetName)
	}
	if base == onto {
		return success(st, "Current branch %s is up to date.", line)
	}

	// Our unique commits, oldest first.
	chain := FirstParentChain(st, tip, base)
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	next := st.Clone()
	parent := onto
	for _, id := range chain {
		src := st.Commits[id]
		c := e.addCommit(next, []string{parent}, src.Message, src.Author)
		parent = c.ID
	}
	next.advanceHead(parent)
	return success(next, "Successfully rebased and updated %s.\nReplayed %d commits.", line, len(chain))
}
