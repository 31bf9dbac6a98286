package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/labgenie/internal/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a lab record to DOCX or PDF",
	Long: `Export a stored lab record.

Examples:
  labgenie export 1 --format pdf
  labgenie export 1 --format docx --output ohm.docx`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

// Flags
var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: docx, pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: experiment_<id>.<format>)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	format, err := domain.ParseExportFormat(exportFormat)
	if err != nil {
		return err
	}

	output := exportOutput
	if output == "" {
		output = domain.ExportFilename(id, format)
	}

	return withApp(ctx, func(a *AppContext) error {
		if err := a.Service.ExportTo(ctx, id, format, output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported experiment %d to %s\n", id, output)
		return nil
	})
}
