package platform

import (
	"encoding/json"
	"log"
	"os"

	"github.com/grantlink/grantlink/cli/functions"
	"github.com/grantlink/grantlink/models"
	"github.com/spf13/cobra"
)

var (
	platformDefinitionFilePath string
	platformKey                string
	displayName                string
	createTier                 string
	createDomain               string
	createClientFacing         bool
)

var platformCreateCmd = &cobra.Command{
	Use:   "create",
	Args:  cobra.NoArgs,
	Short: "Create a custom catalog platform",
	Long:  `Create a custom catalog platform`,
	Run: func(cmd *cobra.Command, args []string) {
		platform := &models.APIPlatform{}
		if platformDefinitionFilePath != "" {
			content, err := os.ReadFile(platformDefinitionFilePath)
			if err != nil {
				log.Fatal("Error when opening file: ", err)
			}
			if err := json.Unmarshal(content, platform); err != nil {
				log.Fatal(err)
			}
		} else {
			platform.PlatformKey = platformKey
			platform.DisplayName = displayName
			platform.Tier = createTier
			platform.Domain = createDomain
			platform.ClientFacing = createClientFacing
		}
		functions.PrettyPrint(functions.CreatePlatform(platform))
	},
}

func init() {
	platformCreateCmd.Flags().StringVar(&platformDefinitionFilePath, "file", "", "Path to platform_definition.json")
	platformCreateCmd.Flags().StringVar(&platformKey, "key", "", "Platform key (lowercase kebab)")
	platformCreateCmd.MarkFlagsMutuallyExclusive("file", "key")
	platformCreateCmd.Flags().StringVar(&displayName, "name", "", "Display name")
	platformCreateCmd.Flags().StringVar(&createTier, "tier", "", "Tier")
	platformCreateCmd.Flags().StringVar(&createDomain, "domain", "", "Domain")
	platformCreateCmd.Flags().BoolVar(&createClientFacing, "client_facing", false, "Is the platform client facing ?")
	rootCmd.AddCommand(platformCreateCmd)
}
