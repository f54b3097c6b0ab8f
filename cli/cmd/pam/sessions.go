package pam

import (
	"os"
	"strconv"
	"time"

	"github.com/grantlink/grantlink/cli/cmd/commons"
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var pamSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Args:  cobra.NoArgs,
	Short: "List all checkout sessions",
	Long:  `List all checkout sessions`,
	Run: func(cmd *cobra.Command, args []string) {
		data := functions.GetPamSessions()
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Request", "Item", "Status", "Checked Out At", "Expires At"})
			for _, s := range *data {
				table.Append([]string{s.ID, s.AccessRequestID, s.ItemID, string(s.Status),
					s.CheckedOutAt.Format(time.RFC3339), s.ExpiresAt.Format(time.RFC3339)})
			}
			table.Render()
		}
	},
}

var pamItemsCmd = &cobra.Command{
	Use:   "items",
	Args:  cobra.NoArgs,
	Short: "List PAM-managed request items",
	Long:  `List PAM-managed request items and their lease state`,
	Run: func(cmd *cobra.Command, args []string) {
		data := functions.GetPamItems()
		switch commons.OutputFormat {
		case commons.JsonOutput:
			functions.PrettyPrint(data)
		default:
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Request", "Item", "Platform", "Label", "Has Secret", "Checked Out"})
			for _, i := range *data {
				table.Append([]string{i.AccessRequestID, i.ItemID, i.PlatformKey, i.Label,
					strconv.FormatBool(i.HasSecret), strconv.FormatBool(i.ActiveSession != nil)})
			}
			table.Render()
		}
	},
}

func init() {
	rootCmd.AddCommand(pamSessionsCmd)
	rootCmd.AddCommand(pamItemsCmd)
}
