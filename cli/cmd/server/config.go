package server

import (
	"fmt"

	"github.com/grantlink/grantlink/cli/functions"
	"github.com/spf13/cobra"
)

var serverConfigCmd = &cobra.Command{
	Use:   "config",
	Args:  cobra.NoArgs,
	Short: "View the server configuration",
	Long:  `View the server configuration with secrets redacted`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetServerConfig())
	},
}

var serverUsageCmd = &cobra.Command{
	Use:   "usage",
	Args:  cobra.NoArgs,
	Short: "View rough object counts",
	Long:  `View rough object counts`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetServerUsage())
	},
}

var serverLogsCmd = &cobra.Command{
	Use:   "logs",
	Args:  cobra.NoArgs,
	Short: "View server logs",
	Long:  `View server logs`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(functions.GetLogs())
	},
}

func init() {
	rootCmd.AddCommand(serverConfigCmd)
	rootCmd.AddCommand(serverUsageCmd)
	rootCmd.AddCommand(serverLogsCmd)
}
