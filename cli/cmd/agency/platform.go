package agency

import (
	"fmt"
	"os"
	"strconv"

	"github.com/grantlink/grantlink/cli/cmd/commons"
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/grantlink/grantlink/models"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	platformKey string
	displayName string
)

var agencyListCmd = &cobra.Command{
	Use:   "list",
	Args:  cobra.NoArgs,
	Short: "List all agency platforms",
	Long:  `List all agency platforms`,
	Run: func(cmd *cobra.Command, args []string) {
		data := functions.GetAgencyPlatforms()
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Platform", "Enabled", "Items"})
			for _, ap := range *data {
				table.Append([]string{ap.ID, ap.PlatformKey,
					strconv.FormatBool(ap.IsEnabled), strconv.Itoa(len(ap.Items))})
			}
			table.Render()
		}
	},
}

var agencyGetCmd = &cobra.Command{
	Use:   "get [PLATFORM ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Get an agency platform",
	Long:  `Get an agency platform`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetAgencyPlatform(args[0]))
	},
}

var agencyCreateCmd = &cobra.Command{
	Use:   "create",
	Args:  cobra.NoArgs,
	Short: "Switch a platform on for the agency",
	Long:  `Switch a platform on for the agency`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.CreateAgencyPlatform(&models.APIAgencyPlatform{
			PlatformKey: platformKey,
			DisplayName: displayName,
		}))
	},
}

var agencyDeleteCmd = &cobra.Command{
	Use:   "delete [PLATFORM ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Delete an agency platform",
	Long:  `Delete an agency platform`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(*functions.DeleteAgencyPlatform(args[0]))
	},
}

var agencyToggleCmd = &cobra.Command{
	Use:   "toggle [PLATFORM ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Toggle an agency platform",
	Long:  `Toggle an agency platform`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.ToggleAgencyPlatform(args[0]))
	},
}

func init() {
	agencyCreateCmd.Flags().StringVar(&platformKey, "platform", "", "Platform key to switch on")
	agencyCreateCmd.MarkFlagRequired("platform")
	agencyCreateCmd.Flags().StringVar(&displayName, "name", "", "Display name override")
	rootCmd.AddCommand(agencyListCmd)
	rootCmd.AddCommand(agencyGetCmd)
	rootCmd.AddCommand(agencyCreateCmd)
	rootCmd.AddCommand(agencyDeleteCmd)
	rootCmd.AddCommand(agencyToggleCmd)
}
