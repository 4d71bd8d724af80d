// snapshot.go - State Serialization
//
// Snapshot is the stable wire form of a repository state. The in-memory
// maps flatten into sorted arrays so the same state always encodes to
// the same bytes, which keeps exports diffable and test fixtures
// readable.

package snapshot

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gitscape/gitscape/internal/git"
)

// Version is written into every snapshot; Decode refuses anything else.
const Version = 1

// Head target kinds.
const (
	HeadBranch = "branch"
	HeadCommit = "commit"
)

// Snapshot is one serialized repository state.
type Snapshot struct {
	Version  int          `json:"version"`
	Commits  []git.Commit `json:"commits"`
	Branches []git.Branch `json:"branches"`
	Tags     []git.Tag    `json:"tags,omitempty"`
	Remotes  []git.Remote `json:"remotes,omitempty"`
	Head     HeadRecord   `json:"head"`
	Staging  []string     `json:"staging,omitempty"`
}

// HeadRecord captures HEAD as either a branch name or a commit id.
type HeadRecord struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

// FromState flattens st into its wire form. Commits sort by creation
// stamp, refs by name, staged paths lexically.
func FromState(st *git.State) *Snapshot {
	snap := &Snapshot{Version: Version}

	for _, c := range st.Commits {
		snap.Commits = append(snap.Commits, c)
	}
	sort.Slice(snap.Commits, func(i, j int) bool { return snap.Commits[i].Seq < snap.Commits[j].Seq })

	for _, b := range st.Branches {
		snap.Branches = append(snap.Branches, b)
	}
	sort.Slice(snap.Branches, func(i, j int) bool { return snap.Branches[i].Name < snap.Branches[j].Name })

	for _, tg := range st.Tags {
		snap.Tags = append(snap.Tags, tg)
	}
	sort.Slice(snap.Tags, func(i, j int) bool { return snap.Tags[i].Name < snap.Tags[j].Name })

	for _, r := range st.Remotes {
		snap.Remotes = append(snap.Remotes, r)
	}
	sort.Slice(snap.Remotes, func(i, j int) bool { return snap.Remotes[i].Name < snap.Remotes[j].Name })

	for path := range st.Staging {
		snap.Staging = append(snap.Staging, path)
	}
	sort.Strings(snap.Staging)

	if st.Head.Detached() {
		snap.Head = HeadRecord{Type: HeadCommit, Target: st.Head.Commit}
	} else {
		snap.Head = HeadRecord{Type: HeadBranch, Target: st.Head.Branch}
	}
	return snap
}

// State rebuilds the in-memory form and verifies it, so a hand-edited
// or corrupted snapshot cannot smuggle a broken graph into a session.
func (s *Snapshot) State() (*git.State, error) {
	if s.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	st := &git.State{
		Commits:  make(map[string]git.Commit, len(s.Commits)),
		Branches: make(map[string]git.Branch, len(s.Branches)),
		Tags:     make(map[string]git.Tag, len(s.Tags)),
		Remotes:  make(map[string]git.Remote, len(s.Remotes)),
		Staging:  make(map[string]struct{}, len(s.Staging)),
	}
	for _, c := range s.Commits {
		if _, dup := st.Commits[c.ID]; dup {
			return nil, fmt.Errorf("duplicate commit %s in snapshot", c.ID)
		}
		st.Commits[c.ID] = c
	}
	for _, b := range s.Branches {
		st.Branches[b.Name] = b
	}
	for _, tg := range s.Tags {
		st.Tags[tg.Name] = tg
	}
	for _, r := range s.Remotes {
		st.Remotes[r.Name] = r
	}
	for _, path := range s.Staging {
		st.Staging[path] = struct{}{}
	}
	switch s.Head.Type {
	case HeadBranch:
		st.Head = git.BranchHead(s.Head.Target)
	case HeadCommit:
		st.Head = git.DetachedHead(s.Head.Target)
	default:
		return nil, fmt.Errorf("unknown head type %q in snapshot", s.Head.Type)
	}
	if err := git.Check(st); err != nil {
		return nil, fmt.Errorf("snapshot does not describe a valid state: %w", err)
	}
	return st, nil
}

// Encode serializes st as indented JSON.
func Encode(st *git.State) ([]byte, error) {
	return json.MarshalIndent(FromState(st), "", "  ")
}

// Decode parses data and rebuilds the verified state.
func Decode(data []byte) (*git.State, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return snap.State()
}
