package server

import (
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/spf13/cobra"
)

var serverHealthCmd = &cobra.Command{
	Use:   "health",
	Args:  cobra.NoArgs,
	Short: "View server health",
	Long:  `View server health`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetServerHealth())
	},
}

var serverVersionCmd = &cobra.Command{
	Use:   "version",
	Args:  cobra.NoArgs,
	Short: "View server version",
	Long:  `View server version`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetServerVersion())
	},
}

func init() {
	rootCmd.AddCommand(serverHealthCmd)
	rootCmd.AddCommand(serverVersionCmd)
}
