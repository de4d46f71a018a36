// ABOUTME: Entry point for the helpdesk CLI
// ABOUTME: Terminal client for the support ticketing system backend

package main

import (
	"fmt"
	"os"

	"github.com/1234-ad/ticketing-system/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
