package accessrequest

import (
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/grantlink/grantlink/models"
	"github.com/spf13/cobra"
)

var (
	itemID     string
	platformID string
	note       string
)

var requestValidateCmd = &cobra.Command{
	Use:   "validate [REQUEST ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Validate one item on an access request",
	Long:  `Validate one item on an access request, by item id or by the legacy platform id`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.ValidateRequestItem(args[0], &models.ValidateItemParams{
			ItemID:     itemID,
			PlatformID: platformID,
			Note:       note,
		}))
	},
}

var requestRefreshCmd = &cobra.Command{
	Use:   "refresh [REQUEST ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Rotate the onboarding token of a request",
	Long:  `Rotate the onboarding token of a request`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.RefreshRequestToken(args[0]))
	},
}

func init() {
	requestValidateCmd.Flags().StringVar(&itemID, "item", "", "Item ID to validate")
	requestValidateCmd.Flags().StringVar(&platformID, "platform", "", "Platform ID (legacy)")
	requestValidateCmd.MarkFlagsMutuallyExclusive("item", "platform")
	requestValidateCmd.Flags().StringVar(&note, "note", "", "Validation note")
	rootCmd.AddCommand(requestValidateCmd)
	rootCmd.AddCommand(requestRefreshCmd)
}
