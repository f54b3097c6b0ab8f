package plugin

import (
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/spf13/cobra"
)

var schemaItemType string

var pluginSchemaCmd = &cobra.Command{
	Use:   "schema [PLATFORM KEY] [agency-config|client-target|request-options]",
	Args:  cobra.ExactArgs(2),
	Short: "Fetch a generated schema document",
	Long:  `Fetch the generated json-schema document for an item type`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetPluginSchema(args[0], args[1], schemaItemType))
	},
}

func init() {
	pluginSchemaCmd.Flags().StringVar(&schemaItemType, "item_type", "", "Access item type (e.g. NAMED_INVITE)")
	pluginSchemaCmd.MarkFlagRequired("item_type")
	rootCmd.AddCommand(pluginSchemaCmd)
}
