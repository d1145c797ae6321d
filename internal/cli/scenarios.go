package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/assetdeck/backend/internal/apiclient"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Inspect and switch the rights-management scenario",
}

var scenariosLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp apiclient.Response[apiclient.ScenarioList]
		if err := client.Get("/scenarios", nil, &resp); err != nil {
			return fmt.Errorf("listing scenarios: %w", err)
		}

		if flagJSON {
			printJSON(resp.Data)
			return nil
		}
		scenarioTable(resp.Data)
		return nil
	},
}

var scenariosSelectCmd = &cobra.Command{
	Use:   "select SCENARIO_ID",
	Short: "Switch the active scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp apiclient.Response[map[string]string]
		if err := client.Put("/scenarios/current", map[string]any{"id": args[0]}, &resp); err != nil {
			return fmt.Errorf("selecting scenario: %w", err)
		}
		fmt.Printf("Active scenario: %s\n", resp.Data["current"])
		return nil
	},
}

func init() {
	scenariosCmd.AddCommand(scenariosLsCmd)
	scenariosCmd.AddCommand(scenariosSelectCmd)
}
