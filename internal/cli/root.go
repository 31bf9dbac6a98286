package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "labgenie",
	Short: "Generate lab records from experiment readings",
	Long: `labgenie turns an experiment description and a set of x,y readings into a
structured lab record (aim, theory, procedure, result) with a plotted graph.

Records are stored locally and can be browsed in the web UI or exported to
DOCX and PDF.`,
	SilenceUsage: true,
}

// Global flags
var (
	configPath string
	logLevel   string
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
}
