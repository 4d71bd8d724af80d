package git

import "strings"

// Commit is a node in the simulated history graph. Immutable once stored
// in a State: operations replace whole State values instead of editing
// commits in place.
type Commit struct {
	ID        string   `json:"id"`
	Parents   []string `json:"parents"`
	Message   string   `json:"message"`
	Author    string   `json:"author,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Seq       int      `json:"seq"`
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		return c.Message[:i]
	}
	return c.Message
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool { return len(c.Parents) > 1 }

// Branch points a name at a commit.
type Branch struct {
	Name   string `json:"name"`
	Target string `json:"target"`
}

// Tag points a name at a commit. A non-empty Message marks it annotated.
type Tag struct {
	Name    string `json:"name"`
	Target  string `json:"target"`
	Message string `json:"message,omitempty"`
}

// Remote is pure bookkeeping; the simulation never talks to it.
type Remote struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Head is attached to a branch or detached at a commit, never both.
type Head struct {
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// BranchHead returns a HEAD attached to the named branch.
func BranchHead(name string) Head { return Head{Branch: name} }

// DetachedHead returns a HEAD pinned at the given commit.
func DetachedHead(id string) Head { return Head{Commit: id} }

// Detached reports whether HEAD points at a commit instead of a branch.
func (h Head) Detached() bool { return h.Branch == "" }

// State is one snapshot of the simulated repository. Treated as a value:
// every operation clones it and returns the clone, so states stored in
// history stay valid forever.
type State struct {
	Commits  map[string]Commit
	Branches map[string]Branch
	Tags     map[string]Tag
	Remotes  map[string]Remote
	Head     Head
	Staging  map[string]struct{}
}

// Clone returns a copy of s with fresh maps. Commit, Branch and Tag are
// plain values that are never edited after insertion, so copying the map
// entries is deep enough.
func (s *State) Clone() *State {
	out := &State{
		Commits:  make(map[string]Commit, len(s.Commits)),
		Branches: make(map[string]Branch, len(s.Branches)),
		Tags:     make(map[string]Tag, len(s.Tags)),
		Remotes:  make(map[string]Remote, len(s.Remotes)),
		Head:     s.Head,
		Staging:  make(map[string]struct{}, len(s.Staging)),
	}
	for id, c := range s.Commits {
		out.Commits[id] = c
	}
	for name, b := range s.Branches {
		out.Branches[name] = b
	}
	for name, t := range s.Tags {
		out.Tags[name] = t
	}
	for name, r := range s.Remotes {
		out.Remotes[name] = r
	}
	for path := range s.Staging {
		out.Staging[path] = struct{}{}
	}
	return out
}

// HeadTarget returns the commit id HEAD resolves to.
func (s *State) HeadTarget() (string, bool) {
	if s.Head.Detached() {
		if s.Head.Commit == "" {
			return "", false
		}
		return s.Head.Commit, true
	}
	b, ok := s.Branches[s.Head.Branch]
	if !ok {
		return "", false
	}
	return b.Target, true
}

// HeadCommit resolves HEAD all the way to its commit.
func (s *State) HeadCommit() (Commit, bool) {
	id, ok := s.HeadTarget()
	if !ok {
		return Commit{}, false
	}
	c, ok := s.Commits[id]
	return c, ok
}

// CurrentBranch returns the branch HEAD is attached to.
func (s *State) CurrentBranch() (Branch, bool) {
	if s.Head.Detached() {
		return Branch{}, false
	}
	b, ok := s.Branches[s.Head.Branch]
	return b, ok
}

// NextSeq returns the creation stamp for the next commit minted into s.
func (s *State) NextSeq() int {
	next := 0
	for _, c := range s.Commits {
		if c.Seq >= next {
			next = c.Seq + 1
		}
	}
	return next
}

// advanceHead points the checked-out ref at id: the current branch when
// HEAD is attached, HEAD itself when detached. Only call on clones.
func (s *State) advanceHead(id string) {
	if s.Head.Detached() {
		s.Head = DetachedHead(id)
		return
	}
	b := s.Branches[s.Head.Branch]
	b.Target = id
	s.Branches[s.Head.Branch] = b
}
