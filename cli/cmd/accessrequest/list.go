package accessrequest

import (
	"os"
	"strconv"
	"time"

	"github.com/grantlink/grantlink/cli/cmd/commons"
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var requestListCmd = &cobra.Command{
	Use:   "list",
	Args:  cobra.NoArgs,
	Short: "List all access requests",
	Long:  `List all access requests`,
	Run: func(cmd *cobra.Command, args []string) {
		data := functions.GetAccessRequests()
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Client", "Status", "Items", "Created At"})
			for _, ar := range *data {
				table.Append([]string{ar.ID, ar.ClientID, string(ar.Status),
					strconv.Itoa(len(ar.Items)), ar.CreatedAt.Format(time.RFC3339)})
			}
			table.Render()
		}
	},
}

func init() {
	rootCmd.AddCommand(requestListCmd)
}
