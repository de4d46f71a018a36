// ABOUTME: Ticket comment commands
// ABOUTME: Adds and lists comments on a ticket

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var ticketCommentCmd = &cobra.Command{
	Use:   "comment <id> <text>",
	Short: "Add a comment to a ticket",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTicketComment(ctx, os.Stdout, args[0], strings.Join(args[1:], " "))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var ticketCommentsCmd = &cobra.Command{
	Use:   "comments <id>",
	Short: "List a ticket's comments",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTicketComments(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	ticketCmd.AddCommand(ticketCommentCmd)
	ticketCmd.AddCommand(ticketCommentsCmd)
}

func runTicketComment(ctx context.Context, w io.Writer, idArg, text string) int {
	id, err := parseID(idArg, "ticket")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(w, "Error: comment text is required")
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

	comment, err := e.client.AddComment(ctx, id, text)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(comment))
		return 0
	}
	fmt.Fprintf(w, "Comment added to ticket #%d\n", id)
	return 0
}

func runTicketComments(ctx context.Context, w io.Writer, idArg string) int {
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

	comments, err := e.client.TicketComments(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(comments))
		return 0
	}
	if len(comments) == 0 {
		fmt.Fprintf(w, "No comments on ticket #%d\n", id)
		return 0
	}
	for _, c := range comments {
		fmt.Fprintf(w, "[%s] %s\n  %s\n", c.CreatedAt, c.CreatedBy.FullName(), c.Content)
	}
	return 0
}
