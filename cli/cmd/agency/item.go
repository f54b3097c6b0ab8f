package agency

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/grantlink/grantlink/cli/functions"
	"github.com/grantlink/grantlink/models"
	"github.com/spf13/cobra"
)

var itemDefinitionFilePath string

func readItemDefinition() *models.APIAccessItem {
	item := &models.APIAccessItem{}
	content, err := os.ReadFile(itemDefinitionFilePath)
	if err != nil {
		log.Fatal("Error when opening file: ", err)
	}
	if err := json.Unmarshal(content, item); err != nil {
		log.Fatal(err)
	}
	return item
}

var itemCreateCmd = &cobra.Command{
	Use:   "create_item [PLATFORM ID]",
	Args:  cobra.ExactArgs(1),
	Short: "Add an access item to an agency platform",
	Long:  `Add an access item to an agency platform from an item_definition.json file`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.CreateAccessItem(args[0], readItemDefinition()))
	},
}

var itemUpdateCmd = &cobra.Command{
	Use:   "update_item [PLATFORM ID] [ITEM ID]",
	Args:  cobra.ExactArgs(2),
	Short: "Update an access item",
	Long:  `Update an access item from an item_definition.json file`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.UpdateAccessItem(args[0], args[1], readItemDefinition()))
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete_item [PLATFORM ID] [ITEM ID]",
	Args:  cobra.ExactArgs(2),
	Short: "Delete an access item",
	Long:  `Delete an access item`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(*functions.DeleteAccessItem(args[0], args[1]))
	},
}

func init() {
	itemCreateCmd.Flags().StringVar(&itemDefinitionFilePath, "file", "", "Path to item_definition.json")
	itemCreateCmd.MarkFlagRequired("file")
	itemUpdateCmd.Flags().StringVar(&itemDefinitionFilePath, "file", "", "Path to item_definition.json")
	itemUpdateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(itemCreateCmd)
	rootCmd.AddCommand(itemUpdateCmd)
	rootCmd.AddCommand(itemDeleteCmd)
}
