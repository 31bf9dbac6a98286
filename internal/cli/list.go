package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/labgenie/internal/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored experiments",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	return withApp(ctx, func(a *AppContext) error {
		experiments, err := a.Service.List(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(experiments) == 0 {
			fmt.Fprintln(out, "No experiments found")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tNAME")
		fmt.Fprintln(w, "--\t-------\t----")
		for _, e := range experiments {
			fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, util.FormatDateTime(e.CreatedAt), e.Name)
		}
		return w.Flush()
	})
}
