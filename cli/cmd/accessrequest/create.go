package accessrequest

import (
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/grantlink/grantlink/models"
	"github.com/spf13/cobra"
)

var (
	clientID    string
	itemIDs     []string
	platformIDs []string
)

var requestCreateCmd = &cobra.Command{
	Use:   "create",
	Args:  cobra.NoArgs,
	Short: "Create an access request",
	Long:  `Create an access request from item ids, or from platform ids via the legacy shorthand`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.CreateAccessRequest(&models.APIAccessRequest{
			ClientID:    clientID,
			ItemIDs:     itemIDs,
			PlatformIDs: platformIDs,
		}))
	},
}

func init() {
	requestCreateCmd.Flags().StringVar(&clientID, "client", "", "Client ID")
	requestCreateCmd.MarkFlagRequired("client")
	requestCreateCmd.Flags().StringSliceVar(&itemIDs, "items", nil, "Access item IDs")
	requestCreateCmd.Flags().StringSliceVar(&platformIDs, "platforms", nil, "Platform IDs (legacy shorthand, default item per platform)")
	requestCreateCmd.MarkFlagsMutuallyExclusive("items", "platforms")
	rootCmd.AddCommand(requestCreateCmd)
}
