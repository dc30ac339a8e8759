package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"calcnote/internal/adapters/clock"
	"calcnote/internal/adapters/editor"
	"calcnote/internal/adapters/evaluator"
	"calcnote/internal/adapters/storage"
	"calcnote/internal/adapters/tui"
	"calcnote/internal/application"
	"calcnote/internal/config"
)

func main() {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("calcnote: %v", err)
	}

	// stdout and stderr belong to the terminal UI
	logOut := io.Discard
	if cfg.Log.File != "" {
		path := config.ExpandPath(cfg.Log.File)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			log.Fatalf("calcnote: %v", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("calcnote: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := cfg.Logger(logOut)
	logger.Info("starting calcnote",
		slog.String("backend", cfg.Store.Backend),
		slog.String("path", cfg.Store.Path),
	)

	store, closeStore, err := storage.Open(cfg, logger)
	if err != nil {
		log.Fatalf("calcnote: %v", err)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := application.NewEngine(evaluator.New(), application.WithLogger(logger))
	app := tui.NewApp(engine, store,
		tui.WithTitle(title(cfg)),
		tui.WithDebounce(clock.System{}, cfg.Debounce()),
		tui.WithEditor(editor.NewOpener()),
		tui.WithLogger(logger),
	)

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func title(cfg *config.Config) string {
	if cfg.Store.Backend == config.BackendSQLite {
		return "calcnote · " + cfg.Store.Notebook
	}
	return "calcnote · " + filepath.Base(config.ExpandPath(cfg.Store.Path))
}
