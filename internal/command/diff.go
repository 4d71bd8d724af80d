package command

import (
	"sort"

	"github.com/gitscape/gitscape/internal/git"
)

// ChangeKind labels one structural difference between two states.
type ChangeKind string

const (
	CommitAdded   ChangeKind = "commit-added"
	BranchCreated ChangeKind = "branch-created"
	BranchMoved   ChangeKind = "branch-moved"
	BranchDeleted ChangeKind = "branch-deleted"
	TagCreated    ChangeKind = "tag-created"
	TagDeleted    ChangeKind = "tag-deleted"
	HeadMoved     ChangeKind = "head-moved"
)

// Change is one entry in a state diff. Name holds the branch or tag
// name, CommitID the new commit for commit-added, From and To the old
// and new positions for moves.
type Change struct {
	Kind     ChangeKind `json:"kind"`
	Name     string     `json:"name,omitempty"`
	CommitID string     `json:"commitId,omitempty"`
	From     string     `json:"from,omitempty"`
	To       string     `json:"to,omitempty"`
}

// Diff lists what changed from before to after: new commits in
// creation order, then branch changes, tag changes and finally HEAD,
// with names sorted so the output is deterministic.
func Diff(before, after *git.State) []Change {
	var changes []Change

	var added []git.Commit
	for id, c := range after.Commits {
		if _, ok := before.Commits[id]; !ok {
			added = append(added, c)
		}
	}
	sort.Slice(added, func(i, j int) bool { return added[i].Seq < added[j].Seq })
	for _, c := range added {
		changes = append(changes, Change{Kind: CommitAdded, CommitID: c.ID})
	}

	for _, name := range refNames(keysOf(before.Branches), keysOf(after.Branches)) {
		b0, ok0 := before.Branches[name]
		b1, ok1 := after.Branches[name]
		switch {
		case !ok0 && ok1:
			changes = append(changes, Change{Kind: BranchCreated, Name: name, To: b1.Target})
		case ok0 && !ok1:
			changes = append(changes, Change{Kind: BranchDeleted, Name: name, From: b0.Target})
		case b0.Target != b1.Target:
			changes = append(changes, Change{Kind: BranchMoved, Name: name, From: b0.Target, To: b1.Target})
		}
	}

	for _, name := range refNames(keysOf(before.Tags), keysOf(after.Tags)) {
		t0, ok0 := before.Tags[name]
		t1, ok1 := after.Tags[name]
		switch {
		case !ok0 && ok1:
			changes = append(changes, Change{Kind: TagCreated, Name: name, To: t1.Target})
		case ok0 && !ok1:
			changes = append(changes, Change{Kind: TagDeleted, Name: name, From: t0.Target})
		}
	}

	if from, to := headPosition(before), headPosition(after); from != to {
		changes = append(changes, Change{Kind: HeadMoved, From: from, To: to})
	}
	return changes
}

// headPosition renders HEAD as its branch name when attached, its
// commit id when detached. A branch advancing does not move HEAD in
// this rendering, matching how git shows the ref itself.
func headPosition(st *git.State) string {
	if st.Head.Detached() {
		return st.Head.Commit
	}
	return st.Head.Branch
}

func keysOf[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// refNames merges two name sets into one sorted, deduplicated list.
func refNames(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, name := range append(a, b...) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
