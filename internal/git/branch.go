package git

// branch.go - Simulated Branch Management
//
// Creates, lists, renames and deletes branch refs. Deletion refuses
// branches not merged into HEAD unless forced, mirroring git's -d/-D
// split.

import (
	"fmt"
	"strings"
)

type branchOptions struct {
	Delete      bool
	ForceDelete bool
	Move        bool
}

func parseBranchOptions(cmd ParsedCommand) branchOptions {
	return branchOptions{
		Delete:      cmd.optBool("d", "delete"),
		ForceDelete: cmd.optBool("D"),
		Move:        cmd.optBool("m", "move"),
	}
}

func (e *Engine) branch(cmd ParsedCommand, st *State) Result {
	opts := parseBranchOptions(cmd)
	switch {
	case opts.Delete || opts.ForceDelete:
		return e.deleteBranch(cmd, st, opts.ForceDelete)
	case opts.Move:
		return e.renameBranch(cmd, st)
	case len(cmd.Args) == 0:
		return listBranches(st)
	default:
		return e.createBranch(cmd, st)
	}
}

func (e *Engine) createBranch(cmd ParsedCommand, st *State) Result {
	name := cmd.Args[0]
	if err := validateRefName("branch", name); err != nil {
		return fail("%v", err)
	}
	if _, exists := st.Branches[name]; exists {
		return fail("fatal: A branch named '%s' already exists.", name)
	}

	target, ok := st.HeadTarget()
	if start, hasStart := cmd.arg(1); hasStart {
		id, err := ResolveCommit(st, start)
		if err != nil {
			return fail("fatal: not a valid object name: '%s'", start)
		}
		target, ok = id, true
	}
	if !ok {
		return fail("fatal: not a valid object name: 'HEAD'")
	}

	next := st.Clone()
	next.Branches[name] = Branch{Name: name, Target: target}
	return success(next, "Created branch %s", name)
}

func (e *Engine) deleteBranch(cmd ParsedCommand, st *State, force bool) Result {
	name, ok := cmd.arg(0)
	if !ok {
		return fail("branch name required")
	}
	b, exists := st.Branches[name]
	if !exists {
		return fail("error: branch '%s' not found", name)
	}
	if !st.Head.Detached() && st.Head.Branch == name {
		return fail("error: cannot delete branch '%s' checked out at current worktree", name)
	}
	if !force {
		head, _ := st.HeadTarget()
		if head == "" || !IsAncestor(st, b.Target, head) {
			return fail("error: the branch '%s' is not fully merged.\nIf you are sure you want to delete it, run 'git branch -D %s'", name, name)
		}
	}

	next := st.Clone()
	delete(next.Branches, name)
	return success(next, "Deleted branch %s (was %s).", name, shortID(b.Target))
}

func (e *Engine) renameBranch(cmd ParsedCommand, st *State) Result {
	var oldName, newName string
	switch len(cmd.Args) {
	case 1:
		if st.Head.Detached() {
			return fail("error: cannot rename detached HEAD")
		}
		oldName, newName = st.Head.Branch, cmd.Args[0]
	case 2:
		oldName, newName = cmd.Args[0], cmd.Args[1]
	default:
		return fail("usage: git branch -m [<oldbranch>] <newbranch>")
	}

	b, ok := st.Branches[oldName]
	if !ok {
		return fail("error: branch '%s' not found", oldName)
	}
	if err := validateRefName("branch", newName); err != nil {
		return fail("%v", err)
	}
	if _, exists := st.Branches[newName]; exists {
		return fail("fatal: A branch named '%s' already exists.", newName)
	}

	next := st.Clone()
	delete(next.Branches, oldName)
	next.Branches[newName] = Branch{Name: newName, Target: b.Target}
	if !next.Head.Detached() && next.Head.Branch == oldName {
		next.Head = BranchHead(newName)
	}
	return success(next, "Renamed branch %s to %s", oldName, newName)
}

func listBranches(st *State) Result {
	var sb strings.Builder
	if st.Head.Detached() {
		fmt.Fprintf(&sb, "* (HEAD detached at %s)\n", shortID(st.Head.Commit))
	}
	for _, name := range sortedKeys(st.Branches) {
		marker := "  "
		if !st.Head.Detached() && st.Head.Branch == name {
			marker = "* "
		}
		sb.WriteString(marker + name + "\n")
	}
	out := strings.TrimRight(sb.String(), "\n")
	return successOutput(st, fmt.Sprintf("%d branches", len(st.Branches)), out)
}

// validateRefName rejects names that would collide with revision syntax
// or read as flags.
func validateRefName(kind, name string) error {
	switch {
	case name == "" || name == "HEAD" || name == "@",
		strings.ContainsAny(name, " \t~^:?*[\\"),
		strings.Contains(name, ".."),
		strings.HasPrefix(name, "-"),
		strings.HasPrefix(name, "."),
		strings.HasSuffix(name, "/"):
		return fmt.Errorf("fatal: '%s' is not a valid %s name", name, kind)
	}
	return nil
}
