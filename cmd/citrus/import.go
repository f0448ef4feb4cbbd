package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/citrushq/citrus/internal/cli"
	"github.com/citrushq/citrus/internal/model"
	"github.com/citrushq/citrus/internal/ofx"
	"github.com/citrushq/citrus/internal/service"
)

func importCmd() *cobra.Command {
	var (
		account      string
		source       string
		dryRun       bool
		listAccounts bool
	)

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import bank statements in OFX or QFX (Quicken) format into one of
your accounts. Each statement entry becomes a ledger transaction: debits
become expenses, credits become income.

Examples:
  # Import a statement into an account
  citrus import --account acc-1 ~/Downloads/statement.qfx

  # Multiple files at once
  citrus import --account acc-1 ~/Downloads/*.qfx

  # See which statement accounts a file contains
  citrus import --list-accounts ~/Downloads/statement.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			parser := ofx.NewParser()

			var files []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, err := os.Stat(pattern); err == nil {
						files = append(files, pattern)
					} else {
						slog.Warn("No files found matching pattern", "pattern", pattern)
					}
				} else {
					files = append(files, matches...)
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("no files found to import")
			}

			if listAccounts {
				for _, path := range files {
					f, err := os.Open(path)
					if err != nil {
						return err
					}
					accounts, err := parser.SourceAccounts(ctx, f)
					_ = f.Close()
					if err != nil {
						return err
					}
					fmt.Printf("%s:\n", filepath.Base(path))
					for _, id := range accounts {
						fmt.Printf("  %s\n", id)
					}
				}
				return nil
			}

			if account == "" {
				return fmt.Errorf("--account is required")
			}

			var inputs []model.TransactionInput
			for _, path := range files {
				f, err := os.Open(path)
				if err != nil {
					slog.Error("Failed to open file", "file", path, "error", err)
					continue
				}
				parsed, err := parser.Parse(ctx, f, ofx.ImportOptions{AccountID: account, Source: source})
				_ = f.Close()
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", path, "error", err)
					continue
				}
				inputs = append(inputs, parsed...)
			}

			if len(inputs) == 0 {
				fmt.Println(cli.FormatWarning("No transactions found in any file"))
				return nil
			}

			if dryRun {
				fmt.Println(cli.FormatTitle(fmt.Sprintf("Dry run: %d transactions would be imported", len(inputs))))
				for _, in := range inputs {
					sign := "+"
					if in.Type == model.TypeExpense {
						sign = "-"
					}
					fmt.Printf("  %s  %s%s  %s\n", in.Date.Format("2006-01-02"), sign, in.Amount.StringFixed(2), in.Description)
				}
				return nil
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			bar := progressbar.NewOptions(len(inputs),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Importing transactions..."),
			)

			imported := 0
			for _, in := range inputs {
				status, err := eng.AddTransaction(ctx, in)
				if err != nil {
					return err
				}
				if status == service.StatusNotFound {
					return fmt.Errorf("account %s not found", account)
				}
				if status == service.StatusApplied {
					imported++
				}
				_ = bar.Add(1)
			}
			fmt.Fprintln(os.Stderr)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transaction(s) into %s", imported, account)))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "target account id")
	cmd.Flags().StringVar(&source, "source", "", "only import statements from this bank account number")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview the import without saving")
	cmd.Flags().BoolVar(&listAccounts, "list-accounts", false, "list statement accounts in the files and exit")

	return cmd
}
