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

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `List, add, update, and delete the transactions in your ledger.`,
	}

	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(updateTxCmd())
	cmd.AddCommand(deleteTxCmd())
	cmd.AddCommand(bulkDeleteTxCmd())
	cmd.AddCommand(clearTxCmd())

	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		limit   int
		account string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			txns := eng.Transactions()
			if account != "" {
				filtered := txns[:0]
				for _, txn := range txns {
					if txn.AccountID == account {
						filtered = append(filtered, txn)
					}
				}
				txns = filtered
			}
			if limit > 0 && len(txns) > limit {
				txns = txns[:limit]
			}

			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found."))
				return nil
			}

			symbol, err := eng.Currency(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Date"),
				headerStyle.Render("Account"),
				headerStyle.Render("Category"),
				headerStyle.Render("Description"),
				headerStyle.Render("Amount"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10),
				strings.Repeat("-", 12),
				strings.Repeat("-", 24),
				strings.Repeat("-", 12))

			for _, txn := range txns {
				amount := money(symbol, txn.Amount)
				switch {
				case txn.IsTransfer():
					amount = cli.SubtleStyle.Render("⇄ " + amount)
				case txn.Type == model.TypeIncome:
					amount = cli.SuccessStyle.Render("+" + amount)
				default:
					amount = cli.ErrorStyle.Render("-" + amount)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					txn.ID,
					txn.Date.Format("2006-01-02"),
					txn.AccountID,
					txn.Category,
					txn.Description,
					amount)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show (0 for all)")
	cmd.Flags().StringVar(&account, "account", "", "only show entries for this account id")

	return cmd
}

func txInputFlags(cmd *cobra.Command, in *txFlags) {
	cmd.Flags().StringVar(&in.account, "account", "", "account id (required)")
	cmd.Flags().StringVar(&in.amount, "amount", "", "amount, always positive (required)")
	cmd.Flags().StringVar(&in.txType, "type", "", "income or expense (required)")
	cmd.Flags().StringVar(&in.category, "category", "", "category label")
	cmd.Flags().StringVar(&in.description, "description", "", "free-form description")
	cmd.Flags().StringVar(&in.date, "date", "", "date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("type")
}

type txFlags struct {
	account     string
	amount      string
	txType      string
	category    string
	description string
	date        string
}

func (f *txFlags) toInput() (model.TransactionInput, error) {
	amount, err := parseAmount(f.amount)
	if err != nil {
		return model.TransactionInput{}, err
	}
	date, err := parseDate(f.date)
	if err != nil {
		return model.TransactionInput{}, err
	}
	return model.TransactionInput{
		AccountID:   f.account,
		Amount:      amount,
		Type:        model.TransactionType(f.txType),
		Category:    f.category,
		Description: f.description,
		Date:        date,
	}, nil
}

func addTxCmd() *cobra.Command {
	var flags txFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			in, err := flags.toInput()
			if err != nil {
				return err
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := eng.AddTransaction(ctx, in)
			if err != nil {
				return err
			}
			if err := statusError(status, "account "+in.AccountID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transaction recorded"))
			return nil
		},
	}

	txInputFlags(cmd, &flags)
	return cmd
}

func updateTxCmd() *cobra.Command {
	var flags txFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a transaction's fields",
		Long:  `Replace the fields of an existing transaction. The old entry's balance effect is reversed and the new one applied, even across accounts.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			in, err := flags.toInput()
			if err != nil {
				return err
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := eng.UpdateTransaction(ctx, args[0], in)
			if err != nil {
				return err
			}
			if err := statusError(status, "transaction "+args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transaction updated"))
			return nil
		},
	}

	txInputFlags(cmd, &flags)
	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction and reverse its balance effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := eng.DeleteTransaction(ctx, args[0])
			if err != nil {
				return err
			}
			if err := statusError(status, "transaction "+args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transaction deleted"))
			return nil
		},
	}
}

func bulkDeleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk-delete <id> [id...]",
		Short: "Delete several transactions at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			before := len(eng.Transactions())
			status, err := eng.BulkDeleteTransactions(ctx, args)
			if err != nil {
				return err
			}
			if err := statusError(status, "matching transactions"); err != nil {
				return err
			}

			// Some of the given ids may not exist; report what actually went.
			removed := before - len(eng.Transactions())
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d transaction(s)", removed)))
			return nil
		},
	}
}

func clearTxCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every transaction",
		Long:  `Delete every transaction in the ledger. Account balances return to their opening values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !force {
				return fmt.Errorf("this deletes every transaction; re-run with --force to confirm")
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := eng.DeleteAllTransactions(ctx)
			if err != nil {
				return err
			}
			if err := statusError(status, "transactions"); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("All transactions deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation check")
	return cmd
}
