package git

// tag.go - Simulated Tags
//
// Lightweight and annotated tags over the commit graph, plus listing
// and -d deletion. -m makes a tag annotated.

import (
	"fmt"
	"strings"
)

func (e *Engine) tag(cmd ParsedCommand, st *State) Result {
	if cmd.optBool("d", "delete") {
		return deleteTag(cmd, st)
	}
	if len(cmd.Args) == 0 {
		return listTags(st)
	}

	name := cmd.Args[0]
	if err := validateRefName("tag", name); err != nil {
		return fail("%v", err)
	}
	if _, exists := st.Tags[name]; exists {
		return fail("fatal: tag '%s' already exists", name)
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

	msg, annotated := cmd.optString("m", "message")
	if cmd.optBool("a") && !annotated {
		return fail("tag name and message required for annotated tag")
	}

	next := st.Clone()
	next.Tags[name] = Tag{Name: name, Target: target, Message: msg}
	if annotated {
		return success(next, "Created annotated tag %s", name)
	}
	return success(next, "Created tag %s", name)
}

func deleteTag(cmd ParsedCommand, st *State) Result {
	name, ok := cmd.arg(0)
	if !ok {
		return fail("tag name required")
	}
	t, exists := st.Tags[name]
	if !exists {
		return fail("error: tag '%s' not found.", name)
	}
	next := st.Clone()
	delete(next.Tags, name)
	return success(next, "Deleted tag '%s' (was %s)", name, shortID(t.Target))
}

func listTags(st *State) Result {
	names := sortedKeys(st.Tags)
	return successOutput(st, fmt.Sprintf("%d tags", len(names)), strings.Join(names, "\n"))
}
