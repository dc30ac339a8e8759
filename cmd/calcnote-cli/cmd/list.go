package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"calcnote/internal/adapters/sqlite"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notebooks in a SQLite store",
	Long: `List the notebooks kept in the SQLite database. A JSON store holds a
single notebook, so there is nothing to list.

Examples:
  calcnote-cli --store sqlite list
  calcnote-cli --store sqlite --notebook taxes set "income = 52000"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, ok := GetStore().(*sqlite.Store)
		if !ok {
			return fmt.Errorf("list needs the sqlite store, not %q", cfg.Store.Backend)
		}

		names, err := db.Notebooks(context.Background())
		if err != nil {
			return err
		}
		for _, name := range names {
			marker := " "
			if name == cfg.Store.Notebook {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
