package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/assetdeck/backend/internal/apiclient"
)

var (
	flagRuleFolder   string
	flagRuleFile     string
	flagRuleCriteria string
	flagRuleOperator string
	flagRuleValues   []string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage access rules on folders and files",
}

// ruleBasePath picks the owning asset from the --folder/--file flags.
func ruleBasePath() (string, error) {
	switch {
	case flagRuleFolder != "" && flagRuleFile != "":
		return "", fmt.Errorf("use either --folder or --file, not both")
	case flagRuleFolder != "":
		return "/folders/" + flagRuleFolder + "/rules", nil
	case flagRuleFile != "":
		return "/files/" + flagRuleFile + "/rules", nil
	default:
		return "", fmt.Errorf("one of --folder or --file is required")
	}
}

var rulesLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List an asset's rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := ruleBasePath()
		if err != nil {
			return err
		}

		if flagRuleFolder != "" {
			var resp apiclient.Response[apiclient.FolderRules]
			if err := client.Get(base, nil, &resp); err != nil {
				return fmt.Errorf("listing rules: %w", err)
			}
			if flagJSON {
				printJSON(resp.Data)
				return nil
			}
			ruleTable(resp.Data.Rules)
			if resp.Data.GuardState != "idle" {
				fmt.Printf("\nGuard state: %s\n", resp.Data.GuardState)
			}
			return nil
		}

		var resp apiclient.Response[[]apiclient.AccessRule]
		if err := client.Get(base, nil, &resp); err != nil {
			return fmt.Errorf("listing rules: %w", err)
		}
		if flagJSON {
			printJSON(resp.Data)
			return nil
		}
		ruleTable(resp.Data)
		return nil
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a rule to a folder or file",
	Long: `Add an access rule.

  deckctl rules add --folder ID --criteria user_collection_access \
      --operator is_any_of --value "Sales Team" --value "VIP Customers"

A first rule on a rule-less folder is parked for confirmation; run
"deckctl rules confirm --folder ID" to commit it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := ruleBasePath()
		if err != nil {
			return err
		}
		if len(flagRuleValues) == 0 {
			return fmt.Errorf("at least one --value is required")
		}

		payload := map[string]any{
			"criteria": flagRuleCriteria,
			"operator": flagRuleOperator,
			"values":   flagRuleValues,
		}

		if flagRuleFolder != "" {
			var resp apiclient.Response[apiclient.GuardDecision]
			if err := client.Post(base, payload, &resp); err != nil {
				return fmt.Errorf("adding rule: %w", err)
			}
			if flagJSON {
				printJSON(resp.Data)
				return nil
			}
			if resp.Data.GuardState == "awaiting_confirmation" {
				fmt.Println("Rule parked: this folder had no rules, so its files currently use their own.")
				fmt.Println("Confirm with: deckctl rules confirm --folder", flagRuleFolder)
				return nil
			}
			fmt.Printf("Rule committed at position %d.\n", resp.Data.Committed.Position)
			return nil
		}

		var resp apiclient.Response[apiclient.AccessRule]
		if err := client.Post(base, payload, &resp); err != nil {
			return fmt.Errorf("adding rule: %w", err)
		}
		if flagJSON {
			printJSON(resp.Data)
			return nil
		}
		fmt.Printf("Rule committed at position %d.\n", resp.Data.Position)
		return nil
	},
}

var rulesConfirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Confirm a parked folder rule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagRuleFolder == "" {
			return fmt.Errorf("--folder is required")
		}

		var resp apiclient.Response[apiclient.AccessRule]
		if err := client.Post("/folders/"+flagRuleFolder+"/rules/confirm", nil, &resp); err != nil {
			return fmt.Errorf("confirming rule: %w", err)
		}
		if flagJSON {
			printJSON(resp.Data)
			return nil
		}
		fmt.Println("Folder rule committed. Contained files now inherit the folder's rules.")
		return nil
	},
}

var rulesCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard a parked folder rule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagRuleFolder == "" {
			return fmt.Errorf("--folder is required")
		}

		if err := client.Post("/folders/"+flagRuleFolder+"/rules/cancel", nil, nil); err != nil {
			return fmt.Errorf("cancelling rule: %w", err)
		}
		fmt.Println("Parked rule discarded.")
		return nil
	},
}

var rulesRmCmd = &cobra.Command{
	Use:   "rm RULE_ID",
	Short: "Delete a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := ruleBasePath()
		if err != nil {
			return err
		}

		if err := client.Delete(base+"/"+args[0], nil); err != nil {
			return fmt.Errorf("deleting rule: %w", err)
		}
		fmt.Println("Rule deleted.")
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{rulesLsCmd, rulesAddCmd, rulesConfirmCmd, rulesCancelCmd, rulesRmCmd} {
		cmd.Flags().StringVar(&flagRuleFolder, "folder", "", "Owning folder ID")
		cmd.Flags().StringVar(&flagRuleFile, "file", "", "Owning file ID")
	}
	rulesAddCmd.Flags().StringVar(&flagRuleCriteria, "criteria", "user_collection_access", "Rule criteria (user_collection_access or user_role)")
	rulesAddCmd.Flags().StringVar(&flagRuleOperator, "operator", "is_any_of", "Rule operator (is_any_of or is_none_of)")
	rulesAddCmd.Flags().StringArrayVar(&flagRuleValues, "value", nil, "Rule value (repeatable)")

	rulesCmd.AddCommand(rulesLsCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesConfirmCmd)
	rulesCmd.AddCommand(rulesCancelCmd)
	rulesCmd.AddCommand(rulesRmCmd)
}
