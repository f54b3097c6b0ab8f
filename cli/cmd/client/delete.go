package client

import (
	"fmt"

	"github.com/grantlink/grantlink/cli/functions"
	"github.com/spf13/cobra"
)

var clientDeleteCmd = &cobra.Command{
	Use:   "delete [CLIENT ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Delete a client",
	Long:  `Delete a client`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(*functions.DeleteClient(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(clientDeleteCmd)
}
