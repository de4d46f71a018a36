// ABOUTME: Whoami command for the helpdesk CLI
// ABOUTME: Shows the signed-in user resolved from the stored session token

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1234-ad/ticketing-system/internal/api"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami resolves the session and prints the current user
func runWhoami(ctx context.Context, w io.Writer) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, ok := e.requireUser(ctx, w)
	if !ok {
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatWhoamiHuman(user))
	return 0
}

// formatWhoamiHuman formats the current user for human readability
func formatWhoamiHuman(user *api.User) string {
	return fmt.Sprintf(`Name:     %s
Username: @%s
Email:    %s
Role:     %s`, user.FullName(), user.Username, user.Email, user.Role)
}
