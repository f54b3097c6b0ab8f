package plugin

import (
	"os"

	"github.com/grantlink/grantlink/cli/cmd/commons"
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var pluginRolesCmd = &cobra.Command{
	Use:   "roles [PLATFORM KEY]",
	Args:  cobra.ExactArgs(1),
	Short: "List the role templates a plugin declares",
	Long:  `List the role templates a plugin declares`,
	Run: func(cmd *cobra.Command, args []string) {
		data := functions.GetPluginRoles(args[0])
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Key", "Label", "Description"})
			for _, role := range *data {
				table.Append([]string{role.Key, role.Label, role.Description})
			}
			table.Render()
		}
	},
}

var pluginAccessTypesCmd = &cobra.Command{
	Use:   "access_types [PLATFORM KEY]",
	Args:  cobra.ExactArgs(1),
	Short: "List the access item types a plugin supports",
	Long:  `List the access item types a plugin supports`,
	Run: func(cmd *cobra.Command, args []string) {
		data := functions.GetPluginAccessTypes(args[0])
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Type", "Label", "Description"})
			for _, spec := range *data {
				table.Append([]string{string(spec.Type), spec.Label, spec.Description})
			}
			table.Render()
		}
	},
}

func init() {
	rootCmd.AddCommand(pluginRolesCmd)
	rootCmd.AddCommand(pluginAccessTypesCmd)
}
