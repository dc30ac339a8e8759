package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calcnote/internal/adapters/editor"
	"calcnote/internal/application/commands"
)

var editorOverride string

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the stored notebook in $EDITOR",
	Long: `Open the notebook in your editor and save it when the editor exits.
The editor is taken from --editor, $EDITOR or $VISUAL, falling back to
nvim, vim, vi or nano.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opener := &editor.Opener{Editor: editorOverride}

		editCmd := commands.NewEditNotebookCommand(GetStore(), GetEvaluator(), opener)
		result, err := editCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		printLines(os.Stdout, result.Lines)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editorOverride, "editor", "e", "", "editor command to use")
	rootCmd.AddCommand(editCmd)
}
