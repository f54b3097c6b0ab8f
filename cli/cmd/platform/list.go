package platform

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
	clientFacing string
	tier         string
	domain       string
	search       string
)

var platformListCmd = &cobra.Command{
	Use:   "list",
	Args:  cobra.NoArgs,
	Short: "List catalog platforms",
	Long:  `List catalog platforms, optionally filtered`,
	Run: func(cmd *cobra.Command, args []string) {
		data := functions.GetPlatforms(&models.PlatformFilter{
			ClientFacing: clientFacing,
			Tier:         tier,
			Domain:       domain,
			Search:       search,
		})
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Key", "Name", "Domain", "Tier", "Client Facing", "Built In"})
			for _, p := range *data {
				table.Append([]string{p.PlatformKey, p.DisplayName, p.Domain, p.Tier,
					strconv.FormatBool(p.ClientFacing), strconv.FormatBool(p.BuiltIn)})
			}
			table.Render()
		}
	},
}

func init() {
	platformListCmd.Flags().StringVar(&clientFacing, "client_facing", "", "Filter by client facing (true|false)")
	platformListCmd.Flags().StringVar(&tier, "tier", "", "Filter by tier")
	platformListCmd.Flags().StringVar(&domain, "domain", "", "Filter by domain")
	platformListCmd.Flags().StringVar(&search, "search", "", "Fuzzy search by key or display name")
	rootCmd.AddCommand(platformListCmd)
}
