package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calcnote/internal/application/commands"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored notebook with its results",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showCmd := commands.NewShowNotebookCommand(GetStore(), GetEvaluator())
		result, err := showCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		if len(result.Lines) == 0 || result.Text == "" {
			fmt.Println("Notebook is empty.")
			return nil
		}
		printLines(os.Stdout, result.Lines)
		return nil
	},
}

var refsCmd = &cobra.Command{
	Use:   "refs [query]",
	Short: "List the references of the stored notebook",
	Long: `List every line that can be referenced, with its reference name and label.
An optional query filters and ranks them by fuzzy match.

Examples:
  calcnote-cli refs
  calcnote-cli refs total`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		refsCmd := commands.NewListReferencesCommand(GetStore(), GetEvaluator(), query)
		refs, err := refsCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		for _, r := range refs {
			fmt.Printf("%-9s line %-4d %s\n", r.Reference, r.Line+1, r.Label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(refsCmd)
}
