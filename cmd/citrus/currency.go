package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citrushq/citrus/internal/cli"
)

func currencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency [symbol]",
		Short: "Show or set the currency symbol",
		Long:  `Show the currency symbol used when rendering amounts, or set a new one. The preference is stored locally and survives logins and logouts.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if len(args) == 0 {
				symbol, err := store.Currency(ctx)
				if err != nil {
					return err
				}
				fmt.Println(symbol)
				return nil
			}

			if err := store.SetCurrency(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Currency symbol set to %q", args[0])))
			return nil
		},
	}

	return cmd
}
