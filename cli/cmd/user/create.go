package user

import (
	"fmt"

	"github.com/grantlink/grantlink/cli/functions"
	"github.com/grantlink/grantlink/models"
	"github.com/spf13/cobra"
)

var (
	password string
	admin    bool
)

var userCreateCmd = &cobra.Command{
	Use:   "create [USERNAME]",
	Args:  cobra.ExactArgs(1),
	Short: "Create a user",
	Long:  `Create a user`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.CreateUser(&models.User{
			UserName: args[0],
			Password: password,
			IsAdmin:  admin,
		}))
	},
}

var userGetCmd = &cobra.Command{
	Use:   "get [USERNAME]",
	Args:  cobra.ExactArgs(1),
	Short: "Get a user",
	Long:  `Get a user`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.GetUser(args[0]))
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete [USERNAME]",
	Args:  cobra.ExactArgs(1),
	Short: "Delete a user",
	Long:  `Delete a user`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(*functions.DeleteUser(args[0]))
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&password, "password", "", "Password")
	userCreateCmd.MarkFlagRequired("password")
	userCreateCmd.Flags().BoolVar(&admin, "admin", false, "Make the user an admin ?")
	rootCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userGetCmd)
	rootCmd.AddCommand(userDeleteCmd)
}
