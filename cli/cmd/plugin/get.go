package plugin

import (
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/spf13/cobra"
)

var pluginGetCmd = &cobra.Command{
	Use:   "get [PLATFORM KEY]",
	Args:  cobra.ExactArgs(1),
	Short: "Get a platform plugin",
	Long:  `Get a platform plugin`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetPlugin(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(pluginGetCmd)
}
