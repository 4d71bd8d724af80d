package cli

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitscape/gitscape/internal/command"
	"github.com/gitscape/gitscape/internal/git"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run an interactive simulator on stdin",
	Long: `Repl runs the command pipeline against a single in-memory repository.
Lines are parsed and executed exactly as the server would; undo, redo,
graph and quit are read-eval loop builtins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := git.NewEngine()
		engine.Author = cfg.Author()
		engine.Branch = cfg.DefaultBranch
		mgr := command.NewManager(command.EngineExecutor(engine), engine.InitialState(), cfg.HistoryLimit)

		fmt.Println("GitScape sandbox. Enter git commands; undo, redo, graph and quit are builtins.")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())

			switch line {
			case "":
				continue
			case "quit", "exit":
				return nil
			case "undo":
				fmt.Println(mgr.Undo("").Message)
				continue
			case "redo":
				fmt.Println(mgr.Redo("").Message)
				continue
			case "graph":
				printGraph(mgr.State())
				continue
			}

			parsed, err := command.Parse(line)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}

			res := mgr.Execute(cmd.Context(), parsed)
			if !res.Success {
				for _, e := range res.Errors {
					fmt.Println("error:", e.Message)
				}
				continue
			}
			if res.Output != "" {
				fmt.Println(res.Output)
			} else if res.Message != "" {
				fmt.Println(res.Message)
			}
		}
	},
}

// printGraph renders a decorated oneline log, newest first.
func printGraph(st *git.State) {
	deco := make(map[string][]string)
	if st.Head.Detached() {
		deco[st.Head.Commit] = append(deco[st.Head.Commit], "HEAD")
	}

	branches := make([]string, 0, len(st.Branches))
	for name := range st.Branches {
		branches = append(branches, name)
	}
	sort.Strings(branches)
	for _, name := range branches {
		label := name
		if name == st.Head.Branch {
			label = "HEAD -> " + name
		}
		tip := st.Branches[name].Target
		deco[tip] = append(deco[tip], label)
	}

	tags := make([]string, 0, len(st.Tags))
	for name := range st.Tags {
		tags = append(tags, name)
	}
	sort.Strings(tags)
	for _, name := range tags {
		target := st.Tags[name].Target
		deco[target] = append(deco[target], "tag: "+name)
	}

	ids := make([]string, 0, len(st.Commits))
	for id := range st.Commits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return st.Commits[ids[i]].Seq > st.Commits[ids[j]].Seq })

	for _, id := range ids {
		c := st.Commits[id]
		if d, ok := deco[id]; ok {
			fmt.Printf("%s (%s) %s\n", id, strings.Join(d, ", "), c.Subject())
		} else {
			fmt.Printf("%s %s\n", id, c.Subject())
		}
	}
}
