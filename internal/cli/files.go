package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/assetdeck/backend/internal/apiclient"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage files inside folders",
}

var filesLsCmd = &cobra.Command{
	Use:   "ls FOLDER_ID",
	Short: "List files in a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp apiclient.Response[[]apiclient.File]
		if err := client.Get("/folders/"+args[0]+"/files", nil, &resp); err != nil {
			return fmt.Errorf("listing files: %w", err)
		}

		if flagJSON {
			printJSON(resp.Data)
			return nil
		}
		fileTable(resp.Data)
		return nil
	},
}

var filesInfoCmd = &cobra.Command{
	Use:   "info FILE_ID",
	Short: "Show one file's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp apiclient.Response[apiclient.File]
		if err := client.Get("/files/"+args[0], nil, &resp); err != nil {
			return fmt.Errorf("fetching file: %w", err)
		}

		if flagJSON {
			printJSON(resp.Data)
			return nil
		}
		f := resp.Data
		fmt.Printf("Name:        %s\n", f.Name)
		fmt.Printf("ID:          %s\n", f.ID)
		fmt.Printf("Folder:      %s\n", f.FolderID)
		fmt.Printf("Type:        %s\n", f.Type)
		fmt.Printf("Size:        %s\n", formatSize(f.Size))
		if f.Description != "" {
			fmt.Printf("Description: %s\n", f.Description)
		}
		return nil
	},
}

var filesRmCmd = &cobra.Command{
	Use:   "rm FILE_ID",
	Short: "Delete a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.Delete("/files/"+args[0], nil); err != nil {
			return fmt.Errorf("deleting file: %w", err)
		}
		fmt.Println("File deleted.")
		return nil
	},
}

var filesLinkCmd = &cobra.Command{
	Use:   "link FILE_ID",
	Short: "Mint a short-lived download link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp apiclient.Response[apiclient.DownloadLink]
		if err := client.Get("/files/"+args[0]+"/download-url", nil, &resp); err != nil {
			return fmt.Errorf("requesting download link: %w", err)
		}

		if flagJSON {
			printJSON(resp.Data)
			return nil
		}
		fmt.Println(resp.Data.URL)
		return nil
	},
}

func init() {
	filesCmd.AddCommand(filesLsCmd)
	filesCmd.AddCommand(filesInfoCmd)
	filesCmd.AddCommand(filesRmCmd)
	filesCmd.AddCommand(filesLinkCmd)
}
