// ABOUTME: Ticket list and search commands
// ABOUTME: Paginated listings of my tickets, all tickets, and keyword search

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

var (
	listAll      bool
	listStatus   string
	listPriority string
	listPage     int
	listSize     int
)

var ticketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets",
	Long: `List your tickets, or every ticket with --all.

The --all listing is available to support agents and administrators.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTicketList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var ticketSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tickets by keyword",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTicketSearch(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	ticketCmd.AddCommand(ticketListCmd)
	ticketCmd.AddCommand(ticketSearchCmd)

	for _, c := range []*cobra.Command{ticketListCmd, ticketSearchCmd} {
		c.Flags().IntVar(&listPage, "page", 0, "Page number (zero-based)")
		c.Flags().IntVar(&listSize, "size", 20, "Page size")
	}
	ticketListCmd.Flags().BoolVar(&listAll, "all", false, "List every ticket (agents and admins)")
	ticketListCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status: OPEN, IN_PROGRESS, RESOLVED, CLOSED")
	ticketListCmd.Flags().StringVar(&listPriority, "priority", "", "Filter by priority: LOW, MEDIUM, HIGH, URGENT")
}

// buildFilters validates the list flags into TicketFilters
func buildFilters() (*api.TicketFilters, error) {
	filters := &api.TicketFilters{Page: listPage, Size: listSize}
	if listStatus != "" {
		status, err := api.ParseTicketStatus(listStatus)
		if err != nil {
			return nil, err
		}
		filters.Status = status
	}
	if listPriority != "" {
		priority, err := api.ParsePriority(listPriority)
		if err != nil {
			return nil, err
		}
		filters.Priority = priority
	}
	return filters, nil
}

// runTicketList fetches a page of tickets and returns exit code
func runTicketList(ctx context.Context, w io.Writer) int {
	filters, err := buildFilters()
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

	var page *api.Page[api.Ticket]
	if listAll {
		if !access.Visible(access.EntryAllTickets, user.Role) {
			fmt.Fprintln(w, "Access denied: listing all tickets requires the SUPPORT_AGENT or ADMIN role.")
			return 1
		}
		page, err = e.client.AllTickets(ctx, filters)
	} else {
		page, err = e.client.MyTickets(ctx, filters)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(page))
		return 0
	}
	fmt.Fprintln(w, formatTicketPageHuman(page))
	return 0
}

// runTicketSearch queries the search endpoint and returns exit code
func runTicketSearch(ctx context.Context, w io.Writer, query string) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if _, ok := e.requireUser(ctx, w); !ok {
		return 2
	}

	page, err := e.client.SearchTickets(ctx, query, &api.TicketFilters{Page: listPage, Size: listSize})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(page))
		return 0
	}
	fmt.Fprintln(w, formatTicketPageHuman(page))
	return 0
}
