package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a lab record",
	Long: `Generate a lab record from a description and readings, render its graph and
store it, exactly as the web form does.

Examples:
  labgenie generate -d "Ohm's Law" -r "1,2;2,4;3,6"`,
	RunE: runGenerate,
}

var (
	generateDescription string
	generateReadings    string
	generateShow        bool
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateDescription, "description", "d", "", "Experiment description")
	generateCmd.Flags().StringVarP(&generateReadings, "readings", "r", "", "Readings as x,y;x,y;...")
	generateCmd.Flags().BoolVar(&generateShow, "show", false, "Print the generated record")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	return withApp(ctx, func(a *AppContext) error {
		id, err := a.Service.Submit(ctx, generateDescription, generateReadings)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created experiment %d\n", id)
		if !generateShow {
			return nil
		}

		experiment, err := a.Service.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
		printExperiment(cmd.OutOrStdout(), experiment)
		return nil
	})
}
