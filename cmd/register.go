// ABOUTME: Register command for the helpdesk CLI
// ABOUTME: Creates a new account and signs in with the returned token

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

	"github.com/1234-ad/ticketing-system/internal/api"
)

var registerReq api.RegisterRequest

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new account and sign in.

New accounts always start with the USER role; administrators can change roles
afterwards. Run without flags for an interactive prompt.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerReq.Username, "username", "", "Username")
	registerCmd.Flags().StringVar(&registerReq.Email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerReq.Password, "password", "", "Password")
	registerCmd.Flags().StringVar(&registerReq.FirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerReq.LastName, "last-name", "", "Last name")
}

// runRegister executes the signup and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	req := registerReq

	if req == (api.RegisterRequest{}) {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Username").Value(&req.Username).Validate(requireField("username")),
				huh.NewInput().Title("Email").Value(&req.Email).Validate(requireField("email")),
				huh.NewInput().Title("First name").Value(&req.FirstName).Validate(requireField("first name")),
				huh.NewInput().Title("Last name").Value(&req.LastName).Validate(requireField("last name")),
				huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&req.Password).Validate(requireField("password")),
			).Title("Create account"),
		).WithTheme(huh.ThemeBase())
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		fmt.Fprintln(w, "Error: username, email, password, first name, and last name are all required")
		return 2
	}

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := e.session.Register(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Account created. Signed in as %s (%s)\n", user.FullName(), user.Role)
	return 0
}
