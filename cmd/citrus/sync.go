package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citrushq/citrus/internal/cli"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Re-sync the ledger with the citrus service",
		Long:  `Reload the ledger for the current session. When logged in this fetches the remote ledger and retries any pending guest data sync; as a guest it just reloads the local snapshot.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if user := eng.CurrentUser(); user != nil {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Synced remote ledger for %s", user.Email)))
			} else {
				fmt.Println(cli.FormatSuccess("Reloaded local guest ledger"))
			}
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d accounts, %d transactions, %d account types",
				len(eng.Accounts()), len(eng.Transactions()), len(eng.AccountTypes()))))
			return nil
		},
	}
}
