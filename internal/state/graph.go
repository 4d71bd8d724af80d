// graph.go - API View of a Repository State
//
// GraphState is the JSON shape the frontend renders: commits newest
// first with their parents split into first and second (the layout only
// ever draws two), refs flattened to name-to-id maps, and the undo and
// redo affordances alongside.

package state

import (
	"sort"

	"github.com/gitscape/gitscape/internal/command"
	"github.com/gitscape/gitscape/internal/git"
)

// GraphCommit is one commit for visualization.
type GraphCommit struct {
	ID             string `json:"id"`
	Message        string `json:"message"`
	ParentID       string `json:"parentId,omitempty"`
	SecondParentID string `json:"secondParentId,omitempty"`
	Author         string `json:"author,omitempty"`
	Timestamp      int64  `json:"timestamp"`
	Seq            int    `json:"seq"`
}

// GraphHead is HEAD resolved for display.
type GraphHead struct {
	Branch   string `json:"branch,omitempty"`
	Commit   string `json:"commit"`
	Detached bool   `json:"detached"`
}

// GraphState is the full renderable snapshot of a session.
type GraphState struct {
	Commits       []GraphCommit     `json:"commits"`
	Branches      map[string]string `json:"branches"`
	Tags          map[string]string `json:"tags,omitempty"`
	Remotes       map[string]string `json:"remotes,omitempty"`
	Head          GraphHead         `json:"head"`
	CurrentBranch string            `json:"currentBranch,omitempty"`
	Staging       []string          `json:"staging,omitempty"`
	CanUndo       bool              `json:"canUndo"`
	CanRedo       bool              `json:"canRedo"`
	UndoDepth     int               `json:"undoDepth"`
	RedoDepth     int               `json:"redoDepth"`
}

// BuildGraph renders the manager's current state. The caller holds
// whatever lock protects the manager.
func BuildGraph(m *command.Manager) GraphState {
	st := m.State()
	gs := GraphState{
		Branches:  make(map[string]string, len(st.Branches)),
		CanUndo:   m.CanUndo(),
		CanRedo:   m.CanRedo(),
		UndoDepth: m.UndoCount(),
		RedoDepth: m.RedoCount(),
	}

	for _, c := range st.Commits {
		gc := GraphCommit{
			ID:        c.ID,
			Message:   c.Message,
			Author:    c.Author,
			Timestamp: c.Timestamp,
			Seq:       c.Seq,
		}
		if len(c.Parents) > 0 {
			gc.ParentID = c.Parents[0]
		}
		if len(c.Parents) > 1 {
			gc.SecondParentID = c.Parents[1]
		}
		gs.Commits = append(gs.Commits, gc)
	}
	sort.Slice(gs.Commits, func(i, j int) bool { return gs.Commits[i].Seq > gs.Commits[j].Seq })

	for name, b := range st.Branches {
		gs.Branches[name] = b.Target
	}
	if len(st.Tags) > 0 {
		gs.Tags = make(map[string]string, len(st.Tags))
		for name, tg := range st.Tags {
			gs.Tags[name] = tg.Target
		}
	}
	if len(st.Remotes) > 0 {
		gs.Remotes = make(map[string]string, len(st.Remotes))
		for name, r := range st.Remotes {
			gs.Remotes[name] = r.URL
		}
	}

	for path := range st.Staging {
		gs.Staging = append(gs.Staging, path)
	}
	sort.Strings(gs.Staging)

	gs.Head = headView(st)
	if b, ok := st.CurrentBranch(); ok {
		gs.CurrentBranch = b.Name
	}
	return gs
}

func headView(st *git.State) GraphHead {
	target, _ := st.HeadTarget()
	if st.Head.Detached() {
		return GraphHead{Commit: target, Detached: true}
	}
	return GraphHead{Branch: st.Head.Branch, Commit: target}
}
