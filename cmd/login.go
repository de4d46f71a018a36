// ABOUTME: Login command for the helpdesk CLI
// ABOUTME: Signs in with email and password and stores the session token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the ticketing system",
	Long: `Sign in with your email and password.

On success the session token is stored locally (1-day expiry) and attached to
every subsequent request. Run without flags for an interactive prompt.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
}

// runLogin executes the sign-in and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	email, password := loginEmail, loginPassword

	if email == "" && password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&email).
					Validate(requireField("email")),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(requireField("password")),
			).Title("Sign in"),
		).WithTheme(huh.ThemeBase())
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	if email == "" || password == "" {
		fmt.Fprintln(w, "Error: email and password are required")
		return 2
	}

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := e.session.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Signed in as %s (%s)\n", user.FullName(), user.Role)
	return 0
}

// requireField rejects empty form input
func requireField(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
