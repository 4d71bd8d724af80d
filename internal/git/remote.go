package git

// remote.go - Remote Bookkeeping
//
// add/remove/list of remote records. Nothing here performs IO; remotes
// exist only so states carry and round-trip them.

import (
	"fmt"
	"strings"
)

func (e *Engine) remote(cmd ParsedCommand, st *State) Result {
	sub, ok := cmd.arg(0)
	if !ok {
		names := sortedKeys(st.Remotes)
		return successOutput(st, fmt.Sprintf("%d remotes", len(names)), strings.Join(names, "\n"))
	}

	switch sub {
	case "add":
		if len(cmd.Args) < 3 {
			return fail("usage: git remote add <name> <url>")
		}
		name, url := cmd.Args[1], cmd.Args[2]
		if _, exists := st.Remotes[name]; exists {
			return fail("error: remote %s already exists.", name)
		}
		next := st.Clone()
		next.Remotes[name] = Remote{Name: name, URL: url}
		return success(next, "Added remote %s", name)

	case "remove", "rm":
		if len(cmd.Args) < 2 {
			return fail("usage: git remote remove <name>")
		}
		name := cmd.Args[1]
		if _, exists := st.Remotes[name]; !exists {
			return fail("error: No such remote: '%s'", name)
		}
		next := st.Clone()
		delete(next.Remotes, name)
		return success(next, "Removed remote %s", name)

	default:
		return fail("unknown subcommand: %s", sub)
	}
}
