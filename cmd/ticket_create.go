// ABOUTME: Ticket creation command
// ABOUTME: Submits a new support ticket, interactively or via flags

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

var (
	createSubject     string
	createDescription string
	createPriority    string
)

var ticketCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new support ticket",
	Long: `Create a new support ticket.

Run without flags for an interactive form.

Example:
  helpdesk ticket create --subject "VPN down" --description "Cannot connect since 9am" --priority HIGH`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTicketCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	ticketCmd.AddCommand(ticketCreateCmd)
	ticketCreateCmd.Flags().StringVar(&createSubject, "subject", "", "Ticket subject")
	ticketCreateCmd.Flags().StringVar(&createDescription, "description", "", "Problem description")
	ticketCreateCmd.Flags().StringVar(&createPriority, "priority", "MEDIUM", "Priority: LOW, MEDIUM, HIGH, URGENT")
}

// runTicketCreate submits the ticket and returns exit code
func runTicketCreate(ctx context.Context, w io.Writer) int {
	subject, description, priorityStr := createSubject, createDescription, createPriority

	if subject == "" && description == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Subject").
					Value(&subject).
					Validate(requireField("subject")),
				huh.NewText().
					Title("Description").
					Value(&description).
					Validate(requireField("description")),
				huh.NewSelect[string]().
					Title("Priority").
					Options(
						huh.NewOption("Low", "LOW"),
						huh.NewOption("Medium", "MEDIUM"),
						huh.NewOption("High", "HIGH"),
						huh.NewOption("Urgent", "URGENT"),
					).
					Value(&priorityStr),
			).Title("New ticket"),
		).WithTheme(huh.ThemeBase())
		if err := form.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	if subject == "" || description == "" {
		fmt.Fprintln(w, "Error: subject and description are required")
		return 2
	}
	priority, err := api.ParsePriority(priorityStr)
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

	ticket, err := e.client.CreateTicket(ctx, api.TicketRequest{
		Subject:     subject,
		Description: description,
		Priority:    priority,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(ticket))
		return 0
	}
	fmt.Fprintf(w, "Created ticket #%d: %s (%s)\n", ticket.ID, ticket.Subject, ticket.Priority)
	return 0
}
