package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/citrushq/citrus/internal/analytics"
	"github.com/citrushq/citrus/internal/cli"
)

func statsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show ledger statistics",
		Long:  `Show total balance, this month's income and expenses, the savings rate, a daily activity series and a spending breakdown by category. Transfers between accounts are never counted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			symbol, err := eng.Currency(ctx)
			if err != nil {
				return err
			}

			now := time.Now()
			snap := eng.Snapshot()
			summary := analytics.Summarize(snap, now)

			fmt.Println(cli.FormatTitle("Overview"))
			fmt.Printf("  Total balance:    %s\n", cli.BoldStyle.Render(money(symbol, summary.TotalBalance)))
			fmt.Printf("  Monthly income:   %s\n", cli.SuccessStyle.Render(money(symbol, summary.MonthlyIncome)))
			fmt.Printf("  Monthly expenses: %s\n", cli.ErrorStyle.Render(money(symbol, summary.MonthlyExpenses)))
			fmt.Printf("  Savings rate:     %s%%\n", summary.SavingsRate().String())

			series := analytics.DailySeries(snap.Transactions, days, now)
			fmt.Println()
			fmt.Println(cli.FormatTitle(fmt.Sprintf("Last %d days", days)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, point := range series {
				if point.Income.IsZero() && point.Expenses.IsZero() {
					continue
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\n",
					point.Date.Format("Mon 02 Jan"),
					cli.SuccessStyle.Render("+"+money(symbol, point.Income)),
					cli.ErrorStyle.Render("-"+money(symbol, point.Expenses)))
			}
			_ = w.Flush()

			breakdown := analytics.CategoryBreakdown(snap.Transactions, now)
			if len(breakdown) > 0 {
				fmt.Println()
				fmt.Println(cli.FormatTitle("Spending by category"))

				categories := make([]string, 0, len(breakdown))
				for category := range breakdown {
					categories = append(categories, category)
				}
				sort.Slice(categories, func(i, j int) bool {
					return breakdown[categories[i]].GreaterThan(breakdown[categories[j]])
				})

				bw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, category := range categories {
					fmt.Fprintf(bw, "  %s\t%s\n", category, money(symbol, breakdown[category]))
				}
				_ = bw.Flush()
			}

			if user := eng.CurrentUser(); user != nil {
				fmt.Println()
				fmt.Println(cli.SubtleStyle.Render("Synced ledger for " + user.Email))
			} else {
				fmt.Println()
				fmt.Println(cli.SubtleStyle.Render("Guest ledger, stored locally"))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "window for the daily series")
	return cmd
}
