package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the oracle accounts, e.g. to fund them before registration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		keys, err := loadKeyring()
		if err != nil {
			return err
		}
		for _, account := range keys.Accounts() {
			fmt.Fprintln(cmd.OutOrStdout(), account.Hex())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}
