package git

// add.go - Simulated Staging
//
// Marks paths as staged. No content travels with them; the staged set
// exists so reset's --soft/--mixed/--hard distinction and the state
// views have something to show.

func (e *Engine) add(cmd ParsedCommand, st *State) Result {
	if len(cmd.Args) == 0 {
		return fail("Nothing specified, nothing added.\nMaybe you wanted to say 'git add .'?")
	}

	fresh := false
	for _, path := range cmd.Args {
		if _, staged := st.Staging[path]; !staged {
			fresh = true
			break
		}
	}
	if !fresh {
		// everything named is already staged
		if len(cmd.Args) == 1 {
			return success(st, "Staged %s", cmd.Args[0])
		}
		return success(st, "Staged %d paths", len(cmd.Args))
	}

	next := st.Clone()
	for _, path := range cmd.Args {
		next.Staging[path] = struct{}{}
	}
	if len(cmd.Args) == 1 {
		return success(next, "Staged %s", cmd.Args[0])
	}
	return success(next, "Staged %d paths", len(cmd.Args))
}
