package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calcnote/internal/adapters/evaluator"
	"calcnote/internal/adapters/storage"
	"calcnote/internal/config"
	"calcnote/internal/ports"
)

var (
	configPath string
	storeKind  string
	storePath  string
	notebook   string
	cfg        *config.Config
	store      ports.Store
	closeStore func() error
	exprEval   ports.Evaluator
)

var rootCmd = &cobra.Command{
	Use:   "calcnote-cli",
	Short: "CLI for calcnote notebooks",
	Long: `calcnote-cli reads and writes calcnote notebooks from the shell.

Every line of a notebook is a calculation. Lines can assign variables,
use variables assigned above them, or reference any other line by its
stable name (_calc0, _calc1, ...).

It provides commands to evaluate text, show, replace, append to and edit
the stored notebook, and list its references.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("store") {
			cfg.Store.Backend = storeKind
		}
		if cmd.Flags().Changed("store-path") {
			cfg.Store.Path = storePath
		}
		if cmd.Flags().Changed("notebook") {
			cfg.Store.Notebook = notebook
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		exprEval = evaluator.New()

		// eval never touches the store
		if cmd.Name() == "eval" {
			return nil
		}
		store, closeStore, err = storage.Open(cfg, cfg.Logger(os.Stderr))
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeStore == nil {
			return nil
		}
		return closeStore()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.Path(), "path to the config file")
	rootCmd.PersistentFlags().StringVarP(&storeKind, "store", "s", config.DefaultBackend, "store backend (json or sqlite)")
	rootCmd.PersistentFlags().StringVarP(&storePath, "store-path", "p", config.DefaultStorePath, "notebook file or database")
	rootCmd.PersistentFlags().StringVarP(&notebook, "notebook", "n", config.DefaultNotebook, "notebook name (sqlite only)")
}

// GetStore returns the initialized store
func GetStore() ports.Store {
	return store
}

// GetEvaluator returns the expression evaluator
func GetEvaluator() ports.Evaluator {
	return exprEval
}
