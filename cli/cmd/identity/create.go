package identity

import (
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/grantlink/grantlink/models"
	"github.com/spf13/cobra"
)

var (
	createIntegration bool
	name              string
	identityType      string
	identifier        string
	createPlatformKey string
	initialSecret     string
)

var identityCreateCmd = &cobra.Command{
	Use:   "create",
	Args:  cobra.NoArgs,
	Short: "Create an identity",
	Long:  `Create an agency identity, or an integration identity with --integration`,
	Run: func(cmd *cobra.Command, args []string) {
		payload := &models.APIIdentity{
			Name:          name,
			Type:          models.IdentityType(identityType),
			Identifier:    identifier,
			PlatformKey:   createPlatformKey,
			InitialSecret: initialSecret,
		}
		if createIntegration {
			functions.PrettyPrint(functions.CreateIntegrationIdentity(payload))
		} else {
			functions.PrettyPrint(functions.CreateAgencyIdentity(payload))
		}
	},
}

func init() {
	identityCreateCmd.Flags().BoolVar(&createIntegration, "integration", false, "Create an integration identity instead of an agency identity")
	identityCreateCmd.Flags().StringVar(&name, "name", "", "Name of the identity")
	identityCreateCmd.MarkFlagRequired("name")
	identityCreateCmd.Flags().StringVar(&identityType, "type", "", "Identity type (SHARED_CREDENTIAL | SERVICE_ACCOUNT)")
	identityCreateCmd.MarkFlagRequired("type")
	identityCreateCmd.Flags().StringVar(&identifier, "identifier", "", "Email or username")
	identityCreateCmd.MarkFlagRequired("identifier")
	identityCreateCmd.Flags().StringVar(&createPlatformKey, "platform", "", "Platform key (empty = usable on any platform)")
	identityCreateCmd.Flags().StringVar(&initialSecret, "secret", "", "Initial credential secret to store")
	rootCmd.AddCommand(identityCreateCmd)
}
