// Package cli implements the deckctl command tree. It talks to a running
// AssetDeck server over the HTTP API and prints tables or JSON.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetdeck/backend/internal/apiclient"
)

var (
	flagJSON      bool
	flagServerURL string

	client *apiclient.Client
)

var rootCmd = &cobra.Command{
	Use:   "deckctl",
	Short: "AssetDeck CLI — manage folders, files and access rules from the terminal",
	Long: `deckctl drives an AssetDeck download-management server.

Get started:
  deckctl folders ls                    List root folders
  deckctl files ls FOLDER_ID            List files in a folder
  deckctl access FILE_ID                Show who can download a file
  deckctl rules add --folder ID ...     Add an access rule`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		serverURL := flagServerURL
		if serverURL == "" {
			serverURL = os.Getenv("ASSETDECK_SERVER")
		}
		if serverURL == "" {
			serverURL = "http://localhost:8080"
		}
		client = apiclient.NewClient(serverURL)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Server URL (default: $ASSETDECK_SERVER or http://localhost:8080)")

	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(accessCmd)
	rootCmd.AddCommand(scenariosCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
