package pam

import (
	"github.com/grantlink/grantlink/cli/functions"
	"github.com/grantlink/grantlink/models"
	"github.com/spf13/cobra"
)

var (
	checkedOutBy string
	reason       string
)

var pamCheckoutCmd = &cobra.Command{
	Use:   "checkout [REQUEST ID] [ITEM ID]",
	Args:  cobra.ExactArgs(2),
	Short: "Check out a shared credential",
	Long:  `Check out a shared credential, revealing its material for the lease window`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.CheckoutCredential(args[0], args[1], &models.CheckoutParams{
			CheckedOutBy: checkedOutBy,
			Reason:       reason,
		}))
	},
}

var pamCheckinCmd = &cobra.Command{
	Use:   "checkin [REQUEST ID] [ITEM ID]",
	Args:  cobra.ExactArgs(2),
	Short: "Check a shared credential back in",
	Long:  `Check a shared credential back in, releasing its lease`,
	Run: func(cmd *cobra.Command, args []string) {
		functions.PrettyPrint(functions.CheckinCredential(args[0], args[1]))
	},
}

func init() {
	pamCheckoutCmd.Flags().StringVar(&checkedOutBy, "by", "", "Who is checking the credential out")
	pamCheckoutCmd.Flags().StringVar(&reason, "reason", "", "Why the credential is needed")
	rootCmd.AddCommand(pamCheckoutCmd)
	rootCmd.AddCommand(pamCheckinCmd)
}
