package agency

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "agency",
	Short: "Manage agency platforms and access items",
	Long:  `Manage agency platforms and access items`,
}

// GetRoot returns the root subcommand.
func GetRoot() *cobra.Command {
	return rootCmd
}
