package context

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage server contexts",
	Long:  `Manage server contexts`,
}

// GetRoot returns the root subcommand.
func GetRoot() *cobra.Command {
	return rootCmd
}
