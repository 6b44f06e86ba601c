// Book is a terminal client for the home-service booking API.
//
// Running without arguments opens the four-step booking wizard; the
// completed booking is posted to the API.
//
// Usage:
//
//	book [command] [flags]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a home service from the terminal",
	Long: `Book a home service (plumbing, electrical, air conditioning and more).

The wizard walks through client details, the service needed, a preferred
schedule and contact preferences, then submits the request to the booking API.

If no command is specified, the wizard launches automatically.`,
	SilenceUsage: true,
	RunE:         runWizard,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
