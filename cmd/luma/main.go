package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦ ╦╔╦╗╔═╗
  ║  ║ ║║║║╠═╣
  ╩═╝╚═╝╩ ╩╩ ╩
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "luma",
		Short: "Server-driven UI for Go",
		Long: `Luma is a server-driven UI framework for Go.

Components render virtual trees on the server, an observable store drives
recomputation, and minimal patches are streamed to the browser:

  • Observable stores with computed properties
  • Virtual tree reconciliation with keyed children
  • Live updates over WebSocket
  • Server-side HTML rendering`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Luma ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
