package git

import (
	"fmt"
	"time"
)

// Op names a simulated command. The dispatch switch in Execute is the
// closed set of everything the engine understands.
type Op string

const (
	OpCommit     Op = "commit"
	OpBranch     Op = "branch"
	OpCheckout   Op = "checkout"
	OpMerge      Op = "merge"
	OpRebase     Op = "rebase"
	OpCherryPick Op = "cherry-pick"
	OpReset      Op = "reset"
	OpRevert     Op = "revert"
	OpTag        Op = "tag"
	OpAdd        Op = "add"
	OpLog        Op = "log"
	OpRemote     Op = "remote"
)

// ParsedCommand is the normalized surface the engine dispatches on:
// positional args and already-split options.
type ParsedCommand struct {
	Name    string
	Args    []string
	Options map[string]string
}

// arg returns the i-th positional argument.
func (c ParsedCommand) arg(i int) (string, bool) {
	if i < 0 || i >= len(c.Args) {
		return "", false
	}
	return c.Args[i], true
}

// optString returns the first of the named options that is present.
func (c ParsedCommand) optString(names ...string) (string, bool) {
	for _, n := range names {
		if v, ok := c.Options[n]; ok {
			return v, true
		}
	}
	return "", false
}

// optBool reports whether any of the named boolean options is set.
func (c ParsedCommand) optBool(names ...string) bool {
	for _, n := range names {
		if v, ok := c.Options[n]; ok && v != "false" {
			return true
		}
	}
	return false
}

// Result is the engine's answer to one command. On success NewState
// carries the replacement state; when the command changed nothing it is
// the input state unchanged. On failure NewState is nil and Err holds a
// git-flavored description.
type Result struct {
	Success  bool
	Message  string
	NewState *State
	Output   string
	Err      string
}

// Engine evaluates commands against immutable states. It is pure apart
// from the injected clock: the same command, state and clock always
// produce the same result.
type Engine struct {
	Author string
	Branch string
	Now    func() time.Time
}

// DefaultAuthor signs commits when the caller supplies none.
const DefaultAuthor = "User <user@example.com>"

// DefaultBranch is the branch a fresh state has checked out.
const DefaultBranch = "main"

// NewEngine returns an engine with the default author, branch name and
// wall clock.
func NewEngine() *Engine {
	return &Engine{Author: DefaultAuthor, Branch: DefaultBranch, Now: time.Now}
}

// NewState builds an initial state using engine defaults. Convenience
// for callers that do not need a configured Engine.
func NewState() *State {
	return NewEngine().InitialState()
}

// InitialState builds the state every session starts from: one root
// commit with the default branch checked out.
func (e *Engine) InitialState() *State {
	st := &State{
		Commits:  make(map[string]Commit),
		Branches: make(map[string]Branch),
		Tags:     make(map[string]Tag),
		Remotes:  make(map[string]Remote),
		Head:     BranchHead(e.Branch),
		Staging:  make(map[string]struct{}),
	}
	root := e.addCommit(st, nil, "Initial commit", "")
	st.Branches[e.Branch] = Branch{Name: e.Branch, Target: root.ID}
	return st
}

// Execute runs one command against st and returns the outcome. st is
// never modified: failures return it untouched and successes return a
// fresh state built from a clone.
func (e *Engine) Execute(cmd ParsedCommand, st *State) Result {
	if st == nil {
		return fail("fatal: no repository state")
	}
	switch Op(cmd.Name) {
	case OpCommit:
		return e.commit(cmd, st)
	case OpBranch:
		return e.branch(cmd, st)
	case OpCheckout:
		return e.checkout(cmd, st)
	case OpMerge:
		return e.merge(cmd, st)
	case OpRebase:
		return e.rebase(cmd, st)
	case OpCherryPick:
		return e.cherryPick(cmd, st)
	case OpReset:
		return e.reset(cmd, st)
	case OpRevert:
		return e.revert(cmd, st)
	case OpTag:
		return e.tag(cmd, st)
	case OpAdd:
		return e.add(cmd, st)
	case OpLog:
		return e.log(cmd, st)
	case OpRemote:
		return e.remote(cmd, st)
	case "":
		return fail("empty command")
	default:
		return fail("'%s' is not a recognized command. See 'help'", cmd.Name)
	}
}

func fail(format string, args ...any) Result {
	return Result{Err: fmt.Sprintf(format, args...)}
}

// success wraps st with a one-line message used for both Message and
// Output.
func success(st *State, format string, args ...any) Result {
	msg := fmt.Sprintf(format, args...)
	return Result{Success: true, Message: msg, NewState: st, Output: msg}
}

// successOutput is success with a separate multi-line output payload.
func successOutput(st *State, msg, output string) Result {
	return Result{Success: true, Message: msg, NewState: st, Output: output}
}
