package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitscape/gitscape/internal/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Inspect the scenario catalog",
}

var scenarioLsJSON bool

var scenarioLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := scenario.NewLoader(cfg.ScenarioDir).List()
		if err != nil {
			return err
		}

		if len(list) == 0 {
			fmt.Println("No scenarios found.")
			fmt.Printf("Put .yaml files in %s or point scenario_dir elsewhere.\n", cfg.ScenarioDir)
			return nil
		}

		if scenarioLsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}

		for _, sc := range list {
			fmt.Printf("%-20s %-32s %s\n", sc.ID, sc.Title, sc.Difficulty.Level)
		}
		return nil
	},
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one scenario in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := scenario.NewLoader(cfg.ScenarioDir).Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", sc.ID, sc.Title)
		if sc.Description != "" {
			fmt.Println(sc.Description)
		}

		fmt.Println("\nSetup:")
		for _, line := range sc.Setup {
			fmt.Println("  " + line)
		}

		fmt.Println("\nChecks:")
		for _, check := range sc.Validation.Checks {
			fmt.Println("  - " + check.Description)
		}

		for i, hint := range sc.Hints {
			if i == 0 {
				fmt.Println("\nHints:")
			}
			fmt.Printf("  %d. %s\n", i+1, hint)
		}
		return nil
	},
}

func init() {
	scenarioLsCmd.Flags().BoolVar(&scenarioLsJSON, "json", false, "Output as JSON")

	scenarioCmd.AddCommand(scenarioLsCmd)
	scenarioCmd.AddCommand(scenarioShowCmd)
}
