package plugin

import (
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/spf13/cobra"
)

var (
	accessItemType  string
	pamOwnership    string
	identityPurpose string
)

var pluginCapabilitiesCmd = &cobra.Command{
	Use:   "capabilities [PLATFORM KEY]",
	Args:  cobra.ExactArgs(1),
	Short: "Resolve effective capabilities for an item type",
	Long:  `Resolve effective capabilities for an item type, optionally under a PAM ownership/purpose context`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetEffectiveCapabilities(args[0], accessItemType, pamOwnership, identityPurpose))
	},
}

func init() {
	pluginCapabilitiesCmd.Flags().StringVar(&accessItemType, "item_type", "", "Access item type (e.g. SHARED_ACCOUNT)")
	pluginCapabilitiesCmd.MarkFlagRequired("item_type")
	pluginCapabilitiesCmd.Flags().StringVar(&pamOwnership, "pam_ownership", "", "PAM ownership (AGENCY_OWNED | CLIENT_OWNED)")
	pluginCapabilitiesCmd.Flags().StringVar(&identityPurpose, "identity_purpose", "", "Identity purpose (HUMAN_INTERACTIVE | INTEGRATION_NON_INTERACTIVE)")
	rootCmd.AddCommand(pluginCapabilitiesCmd)
}
