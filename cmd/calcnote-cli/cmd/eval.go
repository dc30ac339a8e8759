package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calcnote/internal/application/commands"
)

var evalResultsOnly bool

var evalCmd = &cobra.Command{
	Use:   "eval [text...]",
	Short: "Evaluate notebook text without saving it",
	Long: `Evaluate text as a notebook and print each line with its result.
The stored notebook is neither read nor changed.

With no arguments, or "-", the text is read from stdin.

Examples:
  calcnote-cli eval "2 + 3 * 4"
  printf 'rate = 0.2\nrate * 1500\n' | calcnote-cli eval
  calcnote-cli eval -r "sqrt(2)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(args)
		if err != nil {
			return err
		}

		evalCmd := commands.NewEvaluateCommand(GetEvaluator(), text)
		result, err := evalCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		if evalResultsOnly {
			printResults(os.Stdout, result.Lines)
		} else {
			printLines(os.Stdout, result.Lines)
		}
		if result.Report.Errors > 0 {
			return fmt.Errorf("%d line(s) failed to evaluate", result.Report.Errors)
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().BoolVarP(&evalResultsOnly, "results", "r", false, "print only the results")
	rootCmd.AddCommand(evalCmd)
}
