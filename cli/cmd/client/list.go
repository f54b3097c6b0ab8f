package client

import (
	"os"
	"time"

	"github.com/grantlink/grantlink/cli/cmd/commons"
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var clientListCmd = &cobra.Command{
	Use:   "list",
	Args:  cobra.NoArgs,
	Short: "List all clients",
	Long:  `List all clients`,
	Run: func(cmd *cobra.Command, args []string) {
		data := functions.GetClients()
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Name", "Contact Email", "Created At"})
			for _, c := range *data {
				table.Append([]string{c.ID, c.Name, c.ContactEmail, c.CreatedAt.Format(time.RFC3339)})
			}
			table.Render()
		}
	},
}

func init() {
	rootCmd.AddCommand(clientListCmd)
}
