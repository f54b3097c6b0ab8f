package client

import (
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/spf13/cobra"
)

var clientGetCmd = &cobra.Command{
	Use:   "get [CLIENT ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Get a client",
	Long:  `Get a client`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetClient(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(clientGetCmd)
}
