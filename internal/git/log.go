package git

// log.go - Simulated Log
//
// Renders the first-parent history from HEAD or a given revision.
// --oneline collapses each commit to "id subject".

import (
	"fmt"
	"strings"
	"time"
)

func (e *Engine) log(cmd ParsedCommand, st *State) Result {
	start := "HEAD"
	if rev, ok := cmd.arg(0); ok {
		start = rev
	}
	id, err := ResolveCommit(st, start)
	if err != nil {
		return fail("%v", err)
	}

	chain := FirstParentChain(st, id, "")
	oneline := cmd.optBool("oneline")

	var sb strings.Builder
	for _, cid := range chain {
		c := st.Commits[cid]
		if oneline {
			fmt.Fprintf(&sb, "%s %s\n", c.ID, c.Subject())
			continue
		}
		fmt.Fprintf(&sb, "commit %s\nAuthor: %s\nDate:   %s\n\n%s\n\n",
			c.ID, c.Author, formatLogTime(c.Timestamp), indentMessage(c.Message))
	}
	out := strings.TrimRight(sb.String(), "\n")
	return successOutput(st, fmt.Sprintf("%d commits", len(chain)), out)
}

// formatLogTime renders unix milliseconds the way git log prints dates.
func formatLogTime(ms int64) string {
	return time.UnixMilli(ms).Format("Mon Jan 2 15:04:05 2006 -0700")
}

func indentMessage(msg string) string {
	lines := strings.Split(strings.TrimRight(msg, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
