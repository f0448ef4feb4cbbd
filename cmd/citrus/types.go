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
	"github.com/citrushq/citrus/internal/service"
)

func typesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Manage account types",
		Long:  `List, add, and delete account types. The four built-in types cannot be deleted.`,
	}

	cmd.AddCommand(listTypesCmd())
	cmd.AddCommand(addTypeCmd())
	cmd.AddCommand(deleteTypeCmd())

	return cmd
}

func listTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List account types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			types := eng.AccountTypes()
			if len(types) == 0 {
				fmt.Println(cli.InfoStyle.Render("No account types found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Label"),
				headerStyle.Render("Theme"),
				headerStyle.Render(""))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 10),
				strings.Repeat("-", 16),
				strings.Repeat("-", 10),
				"")

			for _, at := range types {
				note := ""
				if model.IsDefaultTypeID(at.ID) {
					note = cli.SubtleStyle.Render("built-in")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", at.ID, at.Label, at.Theme, note)
			}

			return nil
		},
	}
}

func addTypeCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a custom account type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := eng.AddAccountType(ctx, args[0], model.Theme(theme))
			if err != nil {
				return err
			}
			if err := statusError(status, "account type"); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added account type %q", args[0])))
			return nil
		},
	}

	themes := make([]string, len(model.Themes))
	for i, th := range model.Themes {
		themes[i] = string(th)
	}
	cmd.Flags().StringVar(&theme, "theme", "blue", "color theme ("+strings.Join(themes, ", ")+")")

	return cmd
}

func deleteTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom account type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := eng.DeleteAccountType(ctx, args[0])
			if err != nil {
				return err
			}
			if status == service.StatusNoop {
				fmt.Println(cli.FormatWarning("Built-in account types cannot be deleted"))
				return nil
			}
			if err := statusError(status, "account type "+args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Account type deleted"))
			return nil
		},
	}
}
