// export.go - go-git Materialization
//
// Export builds a real in-memory git repository mirroring a simulated
// state: every commit becomes a genuine commit object over a shared
// empty tree, branches and tags become refs, HEAD is symbolic or
// detached to match. The result is inspectable with real git plumbing,
// which the tests use to cross-check the engine's graph algorithms
// against go-git's.

package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/gitscape/gitscape/internal/git"
)

// Repository wraps the materialized go-git repo plus the id mapping in
// both directions.
type Repository struct {
	Repo    *gogit.Repository
	forward map[string]plumbing.Hash
	reverse map[plumbing.Hash]string
}

// Build materializes st. Commits are written in creation order, so
// every parent object exists before its children reference it.
func Build(st *git.State) (*Repository, error) {
	if err := git.Check(st); err != nil {
		return nil, fmt.Errorf("export rejected: %w", err)
	}

	repo, err := gogit.Init(memory.NewStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("init export repository: %w", err)
	}
	out := &Repository{
		Repo:    repo,
		forward: make(map[string]plumbing.Hash, len(st.Commits)),
		reverse: make(map[plumbing.Hash]string, len(st.Commits)),
	}

	// one empty tree shared by every commit; the simulation tracks no
	// file contents
	treeObj := repo.Storer.NewEncodedObject()
	if err := (&object.Tree{}).Encode(treeObj); err != nil {
		return nil, fmt.Errorf("encode empty tree: %w", err)
	}
	treeHash, err := repo.Storer.SetEncodedObject(treeObj)
	if err != nil {
		return nil, fmt.Errorf("store empty tree: %w", err)
	}

	commits := make([]git.Commit, 0, len(st.Commits))
	for _, c := range st.Commits {
		commits = append(commits, c)
	}
	sort.Slice(commits, func(i, j int) bool { return commits[i].Seq < commits[j].Seq })

	for _, c := range commits {
		hash, err := out.writeCommit(c, treeHash)
		if err != nil {
			return nil, err
		}
		out.forward[c.ID] = hash
		out.reverse[hash] = c.ID
	}

	for _, b := range st.Branches {
		ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(b.Name), out.forward[b.Target])
		if err := repo.Storer.SetReference(ref); err != nil {
			return nil, fmt.Errorf("write branch %s: %w", b.Name, err)
		}
	}
	for _, tg := range st.Tags {
		if err := out.writeTag(tg); err != nil {
			return nil, err
		}
	}

	var head *plumbing.Reference
	if st.Head.Detached() {
		head = plumbing.NewHashReference(plumbing.HEAD, out.forward[st.Head.Commit])
	} else {
		head = plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(st.Head.Branch))
	}
	if err := repo.Storer.SetReference(head); err != nil {
		return nil, fmt.Errorf("write HEAD: %w", err)
	}
	return out, nil
}

func (r *Repository) writeCommit(c git.Commit, tree plumbing.Hash) (plumbing.Hash, error) {
	name, email := splitSignature(c.Author)
	sig := object.Signature{Name: name, Email: email, When: time.UnixMilli(c.Timestamp).UTC()}

	parents := make([]plumbing.Hash, 0, len(c.Parents))
	for _, p := range c.Parents {
		parents = append(parents, r.forward[p])
	}

	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      c.Message,
		TreeHash:     tree,
		ParentHashes: parents,
	}
	obj := r.Repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("encode commit %s: %w", c.ID, err)
	}
	hash, err := r.Repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store commit %s: %w", c.ID, err)
	}
	return hash, nil
}

// writeTag stores lightweight tags as plain refs and annotated tags as
// real tag objects pointing at the commit.
func (r *Repository) writeTag(tg git.Tag) error {
	target := r.forward[tg.Target]
	refName := plumbing.NewTagReferenceName(tg.Name)

	if tg.Message == "" {
		return r.Repo.Storer.SetReference(plumbing.NewHashReference(refName, target))
	}

	name, email := splitSignature("")
	tag := &object.Tag{
		Name:       tg.Name,
		Message:    tg.Message,
		Tagger:     object.Signature{Name: name, Email: email, When: time.Now().UTC()},
		TargetType: plumbing.CommitObject,
		Target:     target,
	}
	obj := r.Repo.Storer.NewEncodedObject()
	if err := tag.Encode(obj); err != nil {
		return fmt.Errorf("encode tag %s: %w", tg.Name, err)
	}
	hash, err := r.Repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return fmt.Errorf("store tag %s: %w", tg.Name, err)
	}
	return r.Repo.Storer.SetReference(plumbing.NewHashReference(refName, hash))
}

// Hash returns the go-git hash for a simulated commit id.
func (r *Repository) Hash(simID string) (plumbing.Hash, bool) {
	h, ok := r.forward[simID]
	return h, ok
}

// SimID maps a go-git hash back to its simulated commit id.
func (r *Repository) SimID(h plumbing.Hash) (string, bool) {
	id, ok := r.reverse[h]
	return id, ok
}

// Hashes copies out the full sim-id to hash mapping.
func (r *Repository) Hashes() map[string]plumbing.Hash {
	out := make(map[string]plumbing.Hash, len(r.forward))
	for id, h := range r.forward {
		out[id] = h
	}
	return out
}

// MergeBases runs go-git's merge-base over two simulated ids and maps
// the answers back. Used as an oracle against the engine's own walk.
func (r *Repository) MergeBases(aID, bID string) ([]string, error) {
	ha, ok := r.forward[aID]
	if !ok {
		return nil, fmt.Errorf("unknown commit %s", aID)
	}
	hb, ok := r.forward[bID]
	if !ok {
		return nil, fmt.Errorf("unknown commit %s", bID)
	}
	ca, err := object.GetCommit(r.Repo.Storer, ha)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", aID, err)
	}
	cb, err := object.GetCommit(r.Repo.Storer, hb)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", bID, err)
	}
	bases, err := ca.MergeBase(cb)
	if err != nil {
		return nil, fmt.Errorf("merge-base %s %s: %w", aID, bID, err)
	}
	out := make([]string, 0, len(bases))
	for _, base := range bases {
		out = append(out, r.reverse[base.Hash])
	}
	return out, nil
}

// splitSignature splits "Name <email>" into its parts, defaulting the
// pieces git requires.
func splitSignature(author string) (string, string) {
	name, email := author, ""
	if i := strings.IndexByte(author, '<'); i >= 0 {
		name = strings.TrimSpace(author[:i])
		email = strings.TrimRight(strings.TrimSpace(author[i+1:]), ">")
	}
	if name == "" {
		name = "GitScape"
	}
	if email == "" {
		email = "gitscape@localhost"
	}
	return name, email
}
