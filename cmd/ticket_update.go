// ABOUTME: Ticket status and assignment commands
// ABOUTME: Agent and admin operations for moving tickets through their lifecycle

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1234-ad/ticketing-system/internal/access"
	"github.com/1234-ad/ticketing-system/internal/api"
)

var ticketStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change a ticket's status",
	Long: `Change a ticket's status to OPEN, IN_PROGRESS, RESOLVED, or CLOSED.

Requires the SUPPORT_AGENT or ADMIN role.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTicketStatus(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var ticketAssignCmd = &cobra.Command{
	Use:   "assign <id> <user-id>",
	Short: "Assign a ticket to an agent",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTicketAssign(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	ticketCmd.AddCommand(ticketStatusCmd)
	ticketCmd.AddCommand(ticketAssignCmd)
}

func runTicketStatus(ctx context.Context, w io.Writer, idArg, statusArg string) int {
	id, err := parseID(idArg, "ticket")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	status, err := api.ParseTicketStatus(statusArg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	user, ok := e.requireUser(ctx, w)
	if !ok {
		return 2
	}
	if !access.Visible(access.EntryAllTickets, user.Role) {
		fmt.Fprintln(w, "Access denied: changing ticket status requires the SUPPORT_AGENT or ADMIN role.")
		return 1
	}

	ticket, err := e.client.UpdateTicketStatus(ctx, id, status)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(ticket))
		return 0
	}
	fmt.Fprintf(w, "Ticket #%d is now %s\n", ticket.ID, ticket.Status)
	return 0
}

func runTicketAssign(ctx context.Context, w io.Writer, idArg, userArg string) int {
	id, err := parseID(idArg, "ticket")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	assigneeID, err := parseID(userArg, "user")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	user, ok := e.requireUser(ctx, w)
	if !ok {
		return 2
	}
	if !access.Visible(access.EntryAllTickets, user.Role) {
		fmt.Fprintln(w, "Access denied: assigning tickets requires the SUPPORT_AGENT or ADMIN role.")
		return 1
	}

	ticket, err := e.client.AssignTicket(ctx, id, assigneeID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(ticket))
		return 0
	}
	assignee := "nobody"
	if ticket.AssignedTo != nil {
		assignee = ticket.AssignedTo.FullName()
	}
	fmt.Fprintf(w, "Ticket #%d assigned to %s\n", ticket.ID, assignee)
	return 0
}
