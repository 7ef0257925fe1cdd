package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fincity/investing-engine/internal/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the investd CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("investd version %s\n", server.Version)
		fmt.Println("Portfolio projection engine for the Investing District")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
