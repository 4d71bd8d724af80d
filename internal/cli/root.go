package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitscape/gitscape/internal/config"
)

var (
	cfgPath string
	cfg     *config.Config

	rootCmd = &cobra.Command{
		Use:   "gitscape",
		Short: "GitScape - a git simulator for teaching",
		Long: `GitScape runs git commands against a simulated repository graph.

The serve command exposes the simulator over HTTP for the frontend; the
repl command runs the same engine on stdin for quick experiments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
	}
)

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to a TOML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
