package identity

import (
	"os"
	"strconv"

	"github.com/grantlink/grantlink/cli/cmd/commons"
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/grantlink/grantlink/models"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	integration bool
	platformKey string
	isActive    string
)

var identityListCmd = &cobra.Command{
	Use:   "list",
	Args:  cobra.NoArgs,
	Short: "List identities",
	Long:  `List agency identities, or integration identities with --integration`,
	Run: func(cmd *cobra.Command, args []string) {
		filter := &models.IdentityFilter{PlatformKey: platformKey, IsActive: isActive}
		var data *[]models.Identity
		if integration {
			data = functions.GetIntegrationIdentities(filter)
		} else {
			data = functions.GetAgencyIdentities(filter)
		}
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Name", "Type", "Identifier", "Platform", "Active"})
			for _, id := range *data {
				table.Append([]string{id.ID, id.Name, string(id.Type), id.Identifier,
					id.PlatformKey, strconv.FormatBool(id.IsActive)})
			}
			table.Render()
		}
	},
}

func init() {
	identityListCmd.Flags().BoolVar(&integration, "integration", false, "List integration identities instead of agency identities")
	identityListCmd.Flags().StringVar(&platformKey, "platform", "", "Filter by platform key")
	identityListCmd.Flags().StringVar(&isActive, "active", "", "Filter by active state (true|false)")
	rootCmd.AddCommand(identityListCmd)
}
