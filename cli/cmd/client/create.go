package client

import (
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/grantlink/grantlink/models"
	"github.com/spf13/cobra"
)

var (
	name         string
	contactEmail string
	companyURL   string
)

var clientCreateCmd = &cobra.Command{
	Use:   "create",
	Args:  cobra.NoArgs,
	Short: "Create a client",
	Long:  `Create a client`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.CreateClient(&models.APIClient{
			Name:         name,
			ContactEmail: contactEmail,
			CompanyURL:   companyURL,
		}))
	},
}

func init() {
	clientCreateCmd.Flags().StringVar(&name, "name", "", "Name of the client")
	clientCreateCmd.MarkFlagRequired("name")
	clientCreateCmd.Flags().StringVar(&contactEmail, "email", "", "Contact email")
	clientCreateCmd.Flags().StringVar(&companyURL, "company_url", "", "Company URL")
	rootCmd.AddCommand(clientCreateCmd)
}
