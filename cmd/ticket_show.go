// ABOUTME: Ticket show command
// ABOUTME: Displays one ticket with its comments and attachments

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

var ticketShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a ticket",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTicketShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	ticketCmd.AddCommand(ticketShowCmd)
}

func runTicketShow(ctx context.Context, w io.Writer, idArg string) int {
	id, err := parseID(idArg, "ticket")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if _, ok := e.requireUser(ctx, w); !ok {
		return 2
	}

	ticket, err := e.client.Ticket(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(ticket))
		return 0
	}
	fmt.Fprintln(w, formatTicketHuman(ticket))
	return 0
}
