// ABOUTME: Ticket command group for the helpdesk CLI
// ABOUTME: Shared formatters for ticket listings and detail output

package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1234-ad/ticketing-system/internal/api"
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Create and manage support tickets",
}

func init() {
	rootCmd.AddCommand(ticketCmd)
}

// parseID converts a positional argument to a numeric ID
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}

// formatTicketPageHuman renders a page of tickets as an aligned listing
func formatTicketPageHuman(page *api.Page[api.Ticket]) string {
	if len(page.Content) == 0 {
		return "No tickets found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s %-12s %-8s %-40s %s\n", "ID", "STATUS", "PRIORITY", "SUBJECT", "ASSIGNEE")
	for _, t := range page.Content {
		assignee := "-"
		if t.AssignedTo != nil {
			assignee = t.AssignedTo.FullName()
		}
		fmt.Fprintf(&sb, "%-6d %-12s %-8s %-40s %s\n", t.ID, t.Status, t.Priority, truncate(t.Subject, 40), assignee)
	}
	fmt.Fprintf(&sb, "\nPage %d of %d (%d tickets total)", page.Number+1, max(page.TotalPages, 1), page.TotalElements)
	return sb.String()
}

// formatTicketHuman renders a single ticket with comments and attachments
func formatTicketHuman(t *api.Ticket) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Ticket #%d: %s\n", t.ID, t.Subject)
	fmt.Fprintf(&sb, "Status:   %s\n", t.Status)
	fmt.Fprintf(&sb, "Priority: %s\n", t.Priority)
	fmt.Fprintf(&sb, "Created:  %s by %s\n", t.CreatedAt, t.CreatedBy.FullName())
	if t.AssignedTo != nil {
		fmt.Fprintf(&sb, "Assignee: %s\n", t.AssignedTo.FullName())
	} else {
		fmt.Fprintf(&sb, "Assignee: unassigned\n")
	}
	fmt.Fprintf(&sb, "\n%s\n", t.Description)

	if len(t.Comments) > 0 {
		fmt.Fprintf(&sb, "\nComments (%d):\n", len(t.Comments))
		for _, c := range t.Comments {
			fmt.Fprintf(&sb, "  [%s] %s: %s\n", c.CreatedAt, c.CreatedBy.FullName(), c.Content)
		}
	}
	if len(t.Attachments) > 0 {
		fmt.Fprintf(&sb, "\nAttachments (%d):\n", len(t.Attachments))
		for _, a := range t.Attachments {
			fmt.Fprintf(&sb, "  #%-4d %s (%s, %d bytes)\n", a.ID, a.FileName, a.ContentType, a.FileSize)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// printJSON writes v as indented JSON
func printJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
