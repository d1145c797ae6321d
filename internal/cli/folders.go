package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/assetdeck/backend/internal/apiclient"
)

var flagParentID string

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Manage asset folders",
}

var foldersLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if flagParentID != "" {
			params.Set("parentID", flagParentID)
		}

		var resp apiclient.Response[[]apiclient.Folder]
		if err := client.Get("/folders", params, &resp); err != nil {
			return fmt.Errorf("listing folders: %w", err)
		}

		if flagJSON {
			printJSON(resp.Data)
			return nil
		}
		folderTable(resp.Data)
		return nil
	},
}

var foldersCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{"name": args[0]}
		if flagParentID != "" {
			payload["parentID"] = flagParentID
		}

		var resp apiclient.Response[apiclient.Folder]
		if err := client.Post("/folders", payload, &resp); err != nil {
			return fmt.Errorf("creating folder: %w", err)
		}

		if flagJSON {
			printJSON(resp.Data)
			return nil
		}
		fmt.Printf("Created folder %q (%s)\n", resp.Data.Name, resp.Data.ID)
		return nil
	},
}

var foldersRmCmd = &cobra.Command{
	Use:   "rm FOLDER_ID",
	Short: "Delete a folder and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.Delete("/folders/"+args[0], nil); err != nil {
			return fmt.Errorf("deleting folder: %w", err)
		}
		fmt.Println("Folder deleted.")
		return nil
	},
}

func init() {
	foldersLsCmd.Flags().StringVar(&flagParentID, "parent", "", "List children of this folder")
	foldersCreateCmd.Flags().StringVar(&flagParentID, "parent", "", "Parent folder ID")

	foldersCmd.AddCommand(foldersLsCmd)
	foldersCmd.AddCommand(foldersCreateCmd)
	foldersCmd.AddCommand(foldersRmCmd)
}
