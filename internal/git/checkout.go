package git

// checkout.go - Simulated Checkout
//
// Moves HEAD between lines of history. A branch name attaches HEAD to
// the branch; any other resolvable revision detaches it. -b creates the
// branch first and attaches in one step.

func (e *Engine) checkout(cmd ParsedCommand, st *State) Result {
	if name, ok := cmd.optString("b"); ok {
		return e.checkoutNewBranch(cmd, st, name)
	}

	target, ok := cmd.arg(0)
	if !ok {
		return fail("usage: git checkout <branch> | git checkout -b <branch>")
	}

	if _, isBranch := st.Branches[target]; isBranch {
		if !st.Head.Detached() && st.Head.Branch == target {
			return success(st, "Already on '%s'", target)
		}
		next := st.Clone()
		next.Head = BranchHead(target)
		return success(next, "Switched to branch '%s'", target)
	}

	id, err := ResolveCommit(st, target)
	if err != nil {
		return fail("error: pathspec '%s' did not match any file(s) known to git", target)
	}
	if st.Head.Detached() && st.Head.Commit == id {
		return success(st, "HEAD is now at %s", shortID(id))
	}
	next := st.Clone()
	next.Head = DetachedHead(id)
	return success(next, "Note: switching to '%s'.\n\nYou are in 'detached HEAD' state.", target)
}

func (e *Engine) checkoutNewBranch(cmd ParsedCommand, st *State, name string) Result {
	if err := validateRefName("branch", name); err != nil {
		return fail("%v", err)
	}
	if _, exists := st.Branches[name]; exists {
		return fail("fatal: A branch named '%s' already exists.", name)
	}

	target, ok := st.HeadTarget()
	if start, hasStart := cmd.arg(0); hasStart {
		id, err := ResolveCommit(st, start)
		if err != nil {
			return fail("fatal: invalid reference: %s", start)
		}
		target, ok = id, true
	}
	if !ok {
		return fail("fatal: invalid reference: HEAD")
	}

	next := st.Clone()
	next.Branches[name] = Branch{Name: name, Target: target}
	next.Head = BranchHead(name)
	return success(next, "Switched to a new branch '%s'", name)
}
