package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/citrushq/citrus/internal/cli"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in and out of the citrus service",
		Long:  `Manage your session with the citrus service. Logging in syncs any guest data you built up offline into your remote ledger.`,
	}

	cmd.AddCommand(loginCmd())
	cmd.AddCommand(signupCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(whoamiCmd())

	return cmd
}

func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in with email and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if password == "" {
				var err error
				password, err = readSecret("Password: ")
				if err != nil {
					return err
				}
			}

			gw, err := initGateway()
			if err != nil {
				return err
			}

			user, token, err := gw.Login(ctx, args[0], password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := tokenFile().Save(token); err != nil {
				return err
			}

			// Refreshing with the new token syncs any guest data into the
			// remote ledger and loads it back.
			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s", user.Email)))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Ledger loaded: %d accounts, %d transactions",
				len(eng.Accounts()), len(eng.Transactions()))))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func signupCmd() *cobra.Command {
	var (
		name     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "signup <email>",
		Short: "Create a new citrus account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if password == "" {
				var err error
				password, err = readSecret("Password: ")
				if err != nil {
					return err
				}
			}

			gw, err := initGateway()
			if err != nil {
				return err
			}

			user, token, err := gw.Signup(ctx, args[0], name, password)
			if err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}
			if err := tokenFile().Save(token); err != nil {
				return err
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Welcome to citrus, %s", user.Email)))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Ledger loaded: %d accounts, %d transactions",
				len(eng.Accounts()), len(eng.Transactions()))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and return to the guest ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			gw, err := initGateway()
			if err != nil {
				return err
			}
			if err := gw.Logout(ctx); err != nil {
				// Server-side invalidation is best effort; the local token
				// is what keeps the session alive.
				fmt.Println(cli.FormatWarning("Could not reach the citrus service, clearing local session anyway"))
			}

			if err := tokenFile().Clear(); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			user := eng.CurrentUser()
			if user == nil {
				fmt.Println(cli.InfoStyle.Render("Guest session, your ledger is stored locally"))
			} else {
				fmt.Println(cli.FormatTitle("Session"))
				fmt.Printf("  Email: %s\n", user.Email)
				if user.Name != "" {
					fmt.Printf("  Name:  %s\n", user.Name)
				}
			}

			attempt, err := eng.LastSyncAttempt(ctx)
			if err != nil {
				return err
			}
			if !attempt.IsZero() {
				fmt.Println(cli.SubtleStyle.Render("  Last guest data sync attempt: " + attempt.Format("2006-01-02 15:04")))
			}

			return nil
		},
	}
}
