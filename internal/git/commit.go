package git

// commit.go - Simulated Commit
//
// Records a new commit whose parent is the current HEAD commit and
// advances the checked-out ref. Supports -m, --amend and --allow-empty.

type commitOptions struct {
	Message    string
	HasMessage bool
	Amend      bool
}

func parseCommitOptions(cmd ParsedCommand) commitOptions {
	var opts commitOptions
	opts.Message, opts.HasMessage = cmd.optString("m", "message")
	opts.Amend = cmd.optBool("amend")
	// --allow-empty is accepted for compatibility; with no content model
	// every commit is allowed to be empty.
	return opts
}

func (e *Engine) commit(cmd ParsedCommand, st *State) Result {
	opts := parseCommitOptions(cmd)

	head, ok := st.HeadCommit()
	if !ok {
		return fail("fatal: HEAD does not point at a commit")
	}
	if !opts.Amend && !opts.HasMessage {
		return fail("message is required. Use -m \"message\"")
	}

	next := st.Clone()
	var c Commit
	if opts.Amend {
		// Same parents as the old tip; the old tip stays in the map but
		// nothing references it anymore.
		message := head.Message
		if opts.HasMessage {
			message = opts.Message
		}
		c = e.addCommit(next, append([]string(nil), head.Parents...), message, head.Author)
	} else {
		c = e.addCommit(next, []string{head.ID}, opts.Message, "")
	}
	next.advanceHead(c.ID)
	clearStaging(next)

	return success(next, "[%s %s] %s", headLabel(next.Head), c.ID, c.Subject())
}

// clearStaging drops all staged paths; committing consumes the index.
func clearStaging(st *State) {
	if len(st.Staging) == 0 {
		return
	}
	st.Staging = make(map[string]struct{})
}

// headLabel names the checked-out line the way git's commit output does.
func headLabel(h Head) string {
	if h.Detached() {
		return "detached HEAD"
	}
	return h.Branch
}

func shortID(id string) string {
	if len(id) > idLength {
		return id[:idLength]
	}
	return id
}
