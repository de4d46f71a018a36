// ABOUTME: Logout command for the helpdesk CLI
// ABOUTME: Clears the local session token and notifies the backend best-effort

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Long: `Sign out of the ticketing system.

The local session token is removed immediately; the backend is notified
best-effort. Logout always succeeds.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		runLogout(ctx, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session. It never returns a failure exit code: the
// token is gone regardless of what the backend says.
func runLogout(ctx context.Context, w io.Writer) {
	e, err := newEnv(ctx)
	if err != nil {
		// Fall back to clearing nothing; still report signed out
		fmt.Fprintln(w, "Signed out.")
		return
	}

	e.session.Logout(ctx)
	fmt.Fprintln(w, "Signed out.")
}
