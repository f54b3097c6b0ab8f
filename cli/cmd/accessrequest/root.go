package accessrequest

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "accessrequest",
	Short:   "Manage access requests",
	Long:    `Manage access requests`,
	Aliases: []string{"ar"},
}

// GetRoot returns the root subcommand.
func GetRoot() *cobra.Command {
	return rootCmd
}
