package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citrushq/citrus/internal/cli"
	"github.com/citrushq/citrus/internal/model"
)

func transferCmd() *cobra.Command {
	var (
		from        string
		to          string
		amount      string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move funds between two accounts",
		Long:  `Move funds between two accounts. Creates a linked expense/income pair that is excluded from income and spending statistics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			when, err := parseDate(date)
			if err != nil {
				return err
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			err = eng.TransferFunds(ctx, model.TransferRequest{
				SourceAccountID: from,
				TargetAccountID: to,
				Amount:          value,
				Date:            when,
				Description:     description,
			})
			if err != nil {
				return fmt.Errorf("transfer failed: %w", err)
			}

			symbol, err := eng.Currency(ctx)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Transferred %s from %s to %s", money(symbol, value), from, to)))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source account id (required)")
	cmd.Flags().StringVar(&to, "to", "", "target account id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to move (required)")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&description, "description", "", "override the generated descriptions")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
