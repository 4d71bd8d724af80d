// store.go - Snapshot Persistence
//
// Store keeps named snapshots as JSON files in one directory of a
// billy filesystem. Production mounts an osfs directory under the data
// root; tests mount memfs.

package snapshot

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/gitscape/gitscape/internal/git"
)

const ext = ".json"

// Snapshot names are path components, so they get the strict treatment:
// no separators, no dot prefixes, nothing shell-surprising.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// Store reads and writes snapshots under the root of fs.
type Store struct {
	fs billy.Filesystem
}

// NewStore wraps fs as a snapshot directory.
func NewStore(fs billy.Filesystem) *Store {
	return &Store{fs: fs}
}

// Save encodes st under name, overwriting any previous snapshot with
// that name.
func (s *Store) Save(name string, st *git.State) error {
	if err := checkName(name); err != nil {
		return err
	}
	data, err := Encode(st)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	if err := util.WriteFile(s.fs, name+ext, data, 0o644); err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return nil
}

// Load reads and verifies the named snapshot.
func (s *Store) Load(name string) (*git.State, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := util.ReadFile(s.fs, name+ext)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", name, err)
	}
	st, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", name, err)
	}
	return st, nil
}

// List returns the stored snapshot names, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := s.fs.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named snapshot.
func (s *Store) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := s.fs.Remove(name + ext); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	return nil
}

func checkName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid snapshot name %q", name)
	}
	return nil
}
