package accessrequest

import (
	"fmt"

	"github.com/grantlink/grantlink/cli/functions"
	"github.com/spf13/cobra"
)

var requestGetCmd = &cobra.Command{
	Use:   "get [REQUEST ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Get an access request",
	Long:  `Get an access request`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetAccessRequest(args[0]))
	},
}

var requestDeleteCmd = &cobra.Command{
	Use:   "delete [REQUEST ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Delete an access request",
	Long:  `Delete an access request`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(*functions.DeleteAccessRequest(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(requestGetCmd)
	rootCmd.AddCommand(requestDeleteCmd)
}
