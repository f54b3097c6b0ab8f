package client

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
	Long:  `Manage clients`,
}

// GetRoot returns the root subcommand.
func GetRoot() *cobra.Command {
	return rootCmd
}
