package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/labgenie/internal/domain"
	"github.com/emiliopalmerini/labgenie/internal/util"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored lab record",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withApp(ctx, func(a *AppContext) error {
		experiment, err := a.Service.Get(ctx, id)
		if err != nil {
			return err
		}
		printExperiment(cmd.OutOrStdout(), experiment)
		return nil
	})
}

func printExperiment(w io.Writer, e *domain.Experiment) {
	fmt.Fprintf(w, "Experiment #%d: %s\n", e.ID, e.Name)
	if created := util.FormatDateTime(e.CreatedAt); created != "" {
		fmt.Fprintf(w, "Created:  %s\n", created)
	}
	fmt.Fprintf(w, "Readings: %s\n", e.Readings)

	for _, s := range []struct{ heading, body string }{
		{"Aim", e.Aim},
		{"Theory", e.Theory},
		{"Procedure", e.Procedure},
		{"Result", e.Result},
	} {
		fmt.Fprintf(w, "\n%s\n%s\n", s.heading, s.body)
	}
}
