package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/assetdeck/backend/internal/apiclient"
)

var accessCmd = &cobra.Command{
	Use:   "access FILE_ID",
	Short: "Show the rule set that currently governs a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp apiclient.Response[apiclient.EffectiveAccess]
		if err := client.Get("/files/"+args[0]+"/access", nil, &resp); err != nil {
			return fmt.Errorf("resolving access: %w", err)
		}

		if flagJSON {
			printJSON(resp.Data)
			return nil
		}
		accessDetail(resp.Data)
		return nil
	},
}
