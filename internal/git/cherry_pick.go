package git

// cherry_pick.go - Simulated Cherry-pick
//
// Copies commits onto fresh single-parent commits on top of HEAD.
// Accepts single revisions and A..B ranges; merge commits are refused
// the way git refuses them without a mainline.

import (
	"fmt"
	"strings"
)

func (e *Engine) cherryPick(cmd ParsedCommand, st *State) Result {
	if len(cmd.Args) == 0 {
		return fail("usage: git cherry-pick <commit>...")
	}
	head, ok := st.HeadCommit()
	if !ok {
		return fail("fatal: HEAD does not point at a commit")
	}

	var picks []string
	for _, rev := range cmd.Args {
		ids, err := expandPickRevision(st, rev)
		if err != nil {
			return fail("%v", err)
		}
		picks = append(picks, ids...)
	}
	if len(picks) == 0 {
		return fail("fatal: empty commit set passed")
	}
	for _, id := range picks {
		if st.Commits[id].IsMerge() {
			return fail("error: commit %s is a merge but no -m option was given", shortID(id))
		}
	}

	next := st.Clone()
	parent := head.ID
	var tip Commit
	for _, id := range picks {
		src := st.Commits[id]
		tip = e.addCommit(next, []string{parent}, src.Message, src.Author)
		parent = tip.ID
	}
	next.advanceHead(parent)

	if len(picks) == 1 {
		return success(next, "[%s %s] %s", headLabel(next.Head), tip.ID, tip.Subject())
	}
	return success(next, "Cherry-pick successful. Picked %d commits onto %s.", len(picks), headLabel(next.Head))
}

// expandPickRevision resolves rev, expanding an A..B range into the
// first-parent commits after A up to B, oldest first.
func expandPickRevision(st *State, rev string) ([]string, error) {
	startRev, endRev, isRange := strings.Cut(rev, "..")
	if !isRange {
		id, err := ResolveCommit(st, rev)
		if err != nil {
			return nil, fmt.Errorf("fatal: bad revision '%s'", rev)
		}
		return []string{id}, nil
	}
	if startRev == "" || endRev == "" {
		return nil, fmt.Errorf("malformed range: %s", rev)
	}
	start, err := ResolveCommit(st, startRev)
	if err != nil {
		return nil, fmt.Errorf("fatal: bad revision '%s'", startRev)
	}
	end, err := ResolveCommit(st, endRev)
	if err != nil {
		return nil, fmt.Errorf("fatal: bad revision '%s'", endRev)
	}
	if start == end {
		return nil, nil
	}

	chain := FirstParentChain(st, end, start)
	oldest := st.Commits[chain[len(chain)-1]]
	if len(oldest.Parents) == 0 || oldest.Parents[0] != start {
		return nil, fmt.Errorf("fatal: start revision '%s' is not an ancestor of '%s'", startRev, endRev)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}
