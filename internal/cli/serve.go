package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/labgenie/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	Long: `Start the web UI for submitting, browsing and exporting experiments.

Examples:
  labgenie serve              # Listen on the configured address (default :5000)
  labgenie serve --port 8080  # Listen on port 8080`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides the configured address)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return withApp(ctx, func(a *AppContext) error {
		addr := a.Config.Addr
		if servePort > 0 {
			addr = fmt.Sprintf(":%d", servePort)
		}

		server := web.NewServer(a.Service, a.Logger, web.Options{
			Addr:            addr,
			SecretKey:       a.Config.SecretKey,
			MaxBodyBytes:    a.Config.MaxBodyBytes,
			ShutdownTimeout: a.Config.ShutdownTimeout,
		})
		return server.Start(ctx)
	})
}
