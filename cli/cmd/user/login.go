package user

import (
	"fmt"
	"strconv"

	"github.com/grantlink/grantlink/cli/functions"
	"github.com/spf13/cobra"
)

var loginPassword string

var userHasAdminCmd = &cobra.Command{
	Use:   "hasadmin",
	Args:  cobra.NoArgs,
	Short: "Check if the server has an admin user",
	Long:  `Check if the server has an admin user`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(strconv.FormatBool(*functions.HasAdmin()))
	},
}

var userLoginCmd = &cobra.Command{
	Use:   "login [USERNAME]",
	Args:  cobra.ExactArgs(1),
	Short: "Authenticate and print the issued token",
	Long:  `Authenticate against the server and print the issued token response`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.LoginWithUserAndPassword(args[0], loginPassword))
	},
}

func init() {
	userLoginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")
	userLoginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(userHasAdminCmd)
	rootCmd.AddCommand(userLoginCmd)
}
