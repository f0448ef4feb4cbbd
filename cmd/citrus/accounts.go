package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/citrushq/citrus/internal/cli"
	"github.com/citrushq/citrus/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List, add, update, and delete the accounts (vaults) in your ledger.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(updateAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			accounts := eng.Accounts()
			if len(accounts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No accounts yet. Use 'citrus accounts add' to create one."))
				return nil
			}

			symbol, err := eng.Currency(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Type"),
				headerStyle.Render("Card"),
				headerStyle.Render("Balance"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10),
				strings.Repeat("-", 20),
				strings.Repeat("-", 10),
				strings.Repeat("-", 19),
				strings.Repeat("-", 12))

			for _, acc := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					acc.ID, acc.Name, acc.Type, acc.CardNumber, money(symbol, acc.Balance))
			}

			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var (
		balance    string
		accType    string
		color      string
		cardNumber string
		cardHolder string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opening, err := parseAmount(balance)
			if err != nil {
				return err
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := eng.AddAccount(ctx, model.AccountInput{
				Name:       args[0],
				Balance:    opening,
				Type:       accType,
				Color:      color,
				CardNumber: cardNumber,
				CardHolder: cardHolder,
			})
			if err != nil {
				return err
			}
			if err := statusError(status, "account"); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added account %q", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&balance, "balance", "0", "opening balance")
	cmd.Flags().StringVar(&accType, "type", "Current", "account type label")
	cmd.Flags().StringVar(&color, "color", "blue", "display color theme")
	cmd.Flags().StringVar(&cardNumber, "card-number", "", "card number shown on the account")
	cmd.Flags().StringVar(&cardHolder, "card-holder", "", "card holder shown on the account")

	return cmd
}

func updateAccountCmd() *cobra.Command {
	var (
		name       string
		accType    string
		color      string
		cardNumber string
		cardHolder string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update account details",
		Long:  `Update the name, type, color or card details of an account. Balances only change through transactions.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var patch model.AccountPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("type") {
				patch.Type = &accType
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("card-number") {
				patch.CardNumber = &cardNumber
			}
			if cmd.Flags().Changed("card-holder") {
				patch.CardHolder = &cardHolder
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := eng.UpdateAccount(ctx, args[0], patch)
			if err != nil {
				return err
			}
			if err := statusError(status, "account "+args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Account updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new account name")
	cmd.Flags().StringVar(&accType, "type", "", "new account type label")
	cmd.Flags().StringVar(&color, "color", "", "new display color theme")
	cmd.Flags().StringVar(&cardNumber, "card-number", "", "new card number")
	cmd.Flags().StringVar(&cardHolder, "card-holder", "", "new card holder")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := eng.DeleteAccount(ctx, args[0])
			if err != nil {
				return err
			}
			if err := statusError(status, "account "+args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Account and its transactions deleted"))
			return nil
		},
	}
}
