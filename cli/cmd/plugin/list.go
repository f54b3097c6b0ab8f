package plugin

import (
	"os"
	"strconv"

	"github.com/grantlink/grantlink/cli/cmd/commons"
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var pluginListCmd = &cobra.Command{
	Use:   "list",
	Args:  cobra.NoArgs,
	Short: "List all platform plugins",
	Long:  `List all platform plugins`,
	Run: func(cmd *cobra.Command, args []string) {
		data := functions.GetPlugins()
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Key", "Name", "Category", "Grant Capable", "Integration"})
			for _, p := range *data {
				table.Append([]string{p.PlatformKey, p.DisplayName, p.Category,
					strconv.FormatBool(p.APIGrantCapable), string(p.IntegrationStatus)})
			}
			table.Render()
		}
	},
}

func init() {
	rootCmd.AddCommand(pluginListCmd)
}
