package git

// resolve.go - Revision Resolution
//
// Maps user-facing revision strings onto commit ids: HEAD, branch and
// tag names, full ids, unambiguous id prefixes, and ~N/^N suffix chains.

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Shorter prefixes than this are rejected as too ambiguous.
const minPrefixLength = 4

// ResolveCommit resolves rev to a commit id within st. Ref names win
// over raw ids, matching git's lookup order.
func ResolveCommit(st *State, rev string) (string, error) {
	if rev == "" {
		return "", fmt.Errorf("empty revision")
	}
	base, suffix := splitRevSuffix(rev)
	id, err := resolveBase(st, base, rev)
	if err != nil {
		return "", err
	}
	return applyRevSuffix(st, id, suffix, rev)
}

// splitRevSuffix cuts rev at the first ~ or ^.
func splitRevSuffix(rev string) (base, suffix string) {
	if i := strings.IndexAny(rev, "~^"); i >= 0 {
		return rev[:i], rev[i:]
	}
	return rev, ""
}

func resolveBase(st *State, base, rev string) (string, error) {
	if base == "HEAD" || base == "@" {
		id, ok := st.HeadTarget()
		if !ok {
			return "", fmt.Errorf("fatal: HEAD does not point at a commit")
		}
		return id, nil
	}
	if b, ok := st.Branches[base]; ok {
		return b.Target, nil
	}
	if t, ok := st.Tags[base]; ok {
		return t.Target, nil
	}
	if _, ok := st.Commits[base]; ok {
		return base, nil
	}
	if len(base) >= minPrefixLength {
		return resolvePrefix(st, base, rev)
	}
	return "", unknownRevision(rev)
}

// resolvePrefix matches base against commit ids, requiring exactly one
// hit. Candidates are scanned in sorted order so the ambiguity error is
// deterministic.
func resolvePrefix(st *State, base, rev string) (string, error) {
	var match string
	ids := make([]string, 0, len(st.Commits))
	for id := range st.Commits {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if strings.HasPrefix(id, base) {
			if match != "" {
				return "", fmt.Errorf("fatal: short id %s is ambiguous", base)
			}
			match = id
		}
	}
	if match == "" {
		return "", unknownRevision(rev)
	}
	return match, nil
}

// applyRevSuffix walks ~N (N first-parent steps) and ^N (Nth parent)
// operators left to right.
func applyRevSuffix(st *State, id, suffix, rev string) (string, error) {
	for i := 0; i < len(suffix); {
		op := suffix[i]
		i++
		n := -1
		start := i
		for i < len(suffix) && suffix[i] >= '0' && suffix[i] <= '9' {
			i++
		}
		if start < i {
			n, _ = strconv.Atoi(suffix[start:i])
		}
		switch op {
		case '~':
			if n < 0 {
				n = 1
			}
			for step := 0; step < n; step++ {
				c := st.Commits[id]
				if len(c.Parents) == 0 {
					return "", unknownRevision(rev)
				}
				id = c.Parents[0]
			}
		case '^':
			if n < 0 {
				n = 1
			}
			if n == 0 {
				continue
			}
			c := st.Commits[id]
			if n > len(c.Parents) {
				return "", unknownRevision(rev)
			}
			id = c.Parents[n-1]
		default:
			return "", unknownRevision(rev)
		}
	}
	return id, nil
}

func unknownRevision(rev string) error {
	return fmt.Errorf("fatal: unknown revision '%s'", rev)
}
