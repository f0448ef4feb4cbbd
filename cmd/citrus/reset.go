package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citrushq/citrus/internal/cli"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all accounts, transactions and custom types",
		Long:  `Delete everything in the ledger. When logged in this clears your remote ledger; as a guest it clears the local one.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !force {
				return fmt.Errorf("this deletes your entire ledger; re-run with --force to confirm")
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := eng.ResetAllData(ctx)
			if err != nil {
				return err
			}
			if err := statusError(status, "ledger"); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Ledger reset"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation check")
	return cmd
}
