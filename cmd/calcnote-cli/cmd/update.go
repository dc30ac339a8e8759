package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calcnote/internal/application/commands"
)

var quietUpdate bool

var setCmd = &cobra.Command{
	Use:   "set [text...]",
	Short: "Replace the stored notebook",
	Long: `Replace the whole notebook with new text and recalculate it.
Lines whose text survives keep their reference names.

With no arguments, or "-", the text is read from stdin.

Examples:
  calcnote-cli set "price = 40"
  calcnote-cli set < budget.calc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(args, commands.UpdateModeReplace)
	},
}

var appendCmd = &cobra.Command{
	Use:   "append [text...]",
	Short: "Append lines to the stored notebook",
	Long: `Append text after the last line of the notebook and recalculate it.

Examples:
  calcnote-cli append "tax = price * 0.2"
  calcnote-cli append "_calc0 + tax"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(args, commands.UpdateModeAppend)
	},
}

func runUpdate(args []string, mode commands.UpdateMode) error {
	text, err := readText(args)
	if err != nil {
		return err
	}

	updateCmd := commands.NewUpdateNotebookCommand(GetStore(), GetEvaluator(), text, mode)
	if err := updateCmd.Validate(); err != nil {
		return err
	}
	result, err := updateCmd.Execute(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	if !quietUpdate {
		printLines(os.Stdout, result.Lines)
	}
	return nil
}

func init() {
	setCmd.Flags().BoolVarP(&quietUpdate, "quiet", "q", false, "only print the summary")
	appendCmd.Flags().BoolVarP(&quietUpdate, "quiet", "q", false, "only print the summary")
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(appendCmd)
}
