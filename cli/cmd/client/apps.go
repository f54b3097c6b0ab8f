package client

import (
	"fmt"
	"os"
	"strconv"

	"github.com/grantlink/grantlink/cli/cmd/commons"
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var appPlatformKey string

var clientAppsCmd = &cobra.Command{
	Use:   "apps [CLIENT ID]",
	Args:  cobra.ExactArgs(1),
	Short: "List a client's configured apps",
	Long:  `List a client's configured apps`,
	Run: func(cmd *cobra.Command, args []string) {
		data := functions.GetConfiguredApps(args[0])
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Platform", "Enabled"})
			for _, a := range *data {
				table.Append([]string{a.ID, a.PlatformKey, strconv.FormatBool(a.IsEnabled)})
			}
			table.Render()
		}
	},
}

var clientAddAppCmd = &cobra.Command{
	Use:   "add_app [CLIENT ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Switch a platform on for a client",
	Long:  `Switch a platform on for a client`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.CreateConfiguredApp(args[0], appPlatformKey))
	},
}

var clientToggleAppCmd = &cobra.Command{
	Use:   "toggle_app [APP ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Toggle a configured app",
	Long:  `Toggle a configured app`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.ToggleConfiguredApp(args[0]))
	},
}

var clientDeleteAppCmd = &cobra.Command{
	Use:   "delete_app [APP ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Remove a configured app",
	Long:  `Remove a configured app`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(*functions.DeleteConfiguredApp(args[0]))
	},
}

func init() {
	clientAddAppCmd.Flags().StringVar(&appPlatformKey, "platform", "", "Platform key to switch on")
	clientAddAppCmd.MarkFlagRequired("platform")
	rootCmd.AddCommand(clientAppsCmd)
	rootCmd.AddCommand(clientAddAppCmd)
	rootCmd.AddCommand(clientToggleAppCmd)
	rootCmd.AddCommand(clientDeleteAppCmd)
}
