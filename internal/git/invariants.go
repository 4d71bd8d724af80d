package git

import (
	"errors"
	"fmt"
	"sort"
)

// Check verifies the structural soundness of st: every parent resolves
// and strictly predates its child, every ref targets a live commit, HEAD
// resolves, and no id or creation stamp repeats. A nil error means all
// graph invariants hold.
func Check(st *State) error {
	if st == nil {
		return errors.New("nil state")
	}
	if len(st.Commits) == 0 {
		return errors.New("state has no commits")
	}

	ids := make([]string, 0, len(st.Commits))
	for id := range st.Commits {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	seqs := make(map[int]string, len(ids))
	for _, id := range ids {
		c := st.Commits[id]
		if c.ID != id {
			return fmt.Errorf("commit %s stored under key %s", c.ID, id)
		}
		if prev, dup := seqs[c.Seq]; dup {
			return fmt.Errorf("commits %s and %s share creation stamp %d", prev, id, c.Seq)
		}
		seqs[c.Seq] = id
		for _, p := range c.Parents {
			parent, ok := st.Commits[p]
			if !ok {
				return fmt.Errorf("commit %s: parent %s not in state", id, p)
			}
			if parent.Seq >= c.Seq {
				return fmt.Errorf("commit %s: parent %s does not predate it", id, p)
			}
		}
	}

	for _, name := range sortedKeys(st.Branches) {
		b := st.Branches[name]
		if b.Name != name {
			return fmt.Errorf("branch %q stored under key %q", b.Name, name)
		}
		if _, ok := st.Commits[b.Target]; !ok {
			return fmt.Errorf("branch %q targets unknown commit %s", name, b.Target)
		}
	}
	for _, name := range sortedKeys(st.Tags) {
		t := st.Tags[name]
		if t.Name != name {
			return fmt.Errorf("tag %q stored under key %q", t.Name, name)
		}
		if _, ok := st.Commits[t.Target]; !ok {
			return fmt.Errorf("tag %q targets unknown commit %s", name, t.Target)
		}
	}

	switch {
	case st.Head.Branch != "" && st.Head.Commit != "":
		return errors.New("HEAD is both attached and detached")
	case st.Head.Branch != "":
		if _, ok := st.Branches[st.Head.Branch]; !ok {
			return fmt.Errorf("HEAD attached to unknown branch %q", st.Head.Branch)
		}
	case st.Head.Commit != "":
		if _, ok := st.Commits[st.Head.Commit]; !ok {
			return fmt.Errorf("HEAD detached at unknown commit %s", st.Head.Commit)
		}
	default:
		return errors.New("HEAD is unset")
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
