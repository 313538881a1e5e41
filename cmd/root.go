package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "divtracker",
	Short: "Dividend watchlist client daemon",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(loginCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
