package cmd

import (
	"os"

	"github.com/grantlink/grantlink/cli/cmd/accessrequest"
	"github.com/grantlink/grantlink/cli/cmd/agency"
	"github.com/grantlink/grantlink/cli/cmd/client"
	"github.com/grantlink/grantlink/cli/cmd/commons"
	"github.com/grantlink/grantlink/cli/cmd/context"
	"github.com/grantlink/grantlink/cli/cmd/identity"
	"github.com/grantlink/grantlink/cli/cmd/pam"
	"github.com/grantlink/grantlink/cli/cmd/platform"
	"github.com/grantlink/grantlink/cli/cmd/plugin"
	"github.com/grantlink/grantlink/cli/cmd/server"
	"github.com/grantlink/grantlink/cli/cmd/user"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "glctl",
	Short: "CLI for interacting with the GrantLink Server",
	Long:  `CLI for interacting with the GrantLink Server`,
}

// GetRoot returns the root of all subcommands
func GetRoot() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&commons.OutputFormat, "output", "o", "", "Output format [json]")

	// IMP: Bind subcommands here
	rootCmd.AddCommand(context.GetRoot())
	rootCmd.AddCommand(plugin.GetRoot())
	rootCmd.AddCommand(platform.GetRoot())
	rootCmd.AddCommand(client.GetRoot())
	rootCmd.AddCommand(agency.GetRoot())
	rootCmd.AddCommand(accessrequest.GetRoot())
	rootCmd.AddCommand(identity.GetRoot())
	rootCmd.AddCommand(pam.GetRoot())
	rootCmd.AddCommand(server.GetRoot())
	rootCmd.AddCommand(user.GetRoot())
}
