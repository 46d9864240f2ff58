package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	naverrors "github.com/navstack-dev/navstack/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┐┌┌─┐┬  ┬┌─┐┌┬┐┌─┐┌─┐┬┌─
  │││├─┤└┐┌┘└─┐ │ ├─┤│  ├┴┐
  ┘└┘┴ ┴ └┘ └─┘ ┴ ┴ ┴└─┘┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "navstack",
		Short: "The navigation stack server",
		Long: `Navstack serves a navigation stack engine over HTTP and WebSocket.

Clients reconcile browser-style route changes against a server-held
page stack. Features include:

  • Declarative route reconciliation and imperative navigation
  • Result propagation from closed pages back to their openers
  • Stack snapshots in memory, Redis, or S3
  • Live stack updates over WebSocket
  • Prometheus metrics and OpenTelemetry traces`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		checkCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var ne *naverrors.Error
		if errors.As(err, &ne) {
			fmt.Fprintln(os.Stderr, ne.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the navstack ASCII art banner.
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
