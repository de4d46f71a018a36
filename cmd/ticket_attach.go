// ABOUTME: Ticket attachment commands
// ABOUTME: Uploads files to tickets and downloads them back

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

var attachOutput string

var ticketAttachCmd = &cobra.Command{
	Use:   "attach <id> <file>",
	Short: "Attach a file to a ticket",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTicketAttach(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var ticketDownloadCmd = &cobra.Command{
	Use:   "download <id> <attachment-id>",
	Short: "Download a ticket attachment",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTicketDownload(ctx, os.Stdout, args[0], args[1], attachOutput)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	ticketCmd.AddCommand(ticketAttachCmd)
	ticketCmd.AddCommand(ticketDownloadCmd)

	ticketDownloadCmd.Flags().StringVarP(&attachOutput, "output", "o", "", "Output file (default: attachment file name)")
}

func runTicketAttach(ctx context.Context, w io.Writer, idArg, path string) int {
	id, err := parseID(idArg, "ticket")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer f.Close()

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if _, ok := e.requireUser(ctx, w); !ok {
		return 2
	}

	attachment, err := e.client.UploadAttachment(ctx, id, filepath.Base(path), f)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(attachment))
		return 0
	}
	fmt.Fprintf(w, "Attached %s (%d bytes) to ticket #%d\n", attachment.FileName, attachment.FileSize, id)
	return 0
}

func runTicketDownload(ctx context.Context, w io.Writer, idArg, attachArg, output string) int {
	id, err := parseID(idArg, "ticket")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	attachmentID, err := parseID(attachArg, "attachment")
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

	// The file name comes from ticket metadata when no output path is given
	if output == "" {
		ticket, err := e.client.Ticket(ctx, id)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		for _, a := range ticket.Attachments {
			if a.ID == attachmentID {
				output = a.FileName
				break
			}
		}
		if output == "" {
			fmt.Fprintf(w, "Error: ticket #%d has no attachment %d\n", id, attachmentID)
			return 2
		}
	}

	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer f.Close()

	n, err := e.client.DownloadAttachment(ctx, id, attachmentID, f)
	if err != nil {
		os.Remove(output)
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Saved %s (%d bytes)\n", output, n)
	return 0
}
