package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the paperdesk CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("paperdesk version %s\n", version)
		fmt.Println("A local paper-trading desk with portfolio tracking and signal detection")
		fmt.Println("https://github.com/rustyeddy/paperdesk")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
