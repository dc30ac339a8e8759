package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"calcnote/internal/adapters/evaluator"
	mcpadapter "calcnote/internal/adapters/mcp"
	"calcnote/internal/adapters/storage"
	"calcnote/internal/config"
)

func main() {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	storeFlag := flag.String("store", "", "store backend (json or sqlite)")
	pathFlag := flag.String("store-path", "", "notebook file or database")
	notebookFlag := flag.String("notebook", "", "notebook name (sqlite only)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("calcnote-mcp: %v", err)
	}
	if *storeFlag != "" {
		cfg.Store.Backend = *storeFlag
	}
	if *pathFlag != "" {
		cfg.Store.Path = *pathFlag
	}
	if *notebookFlag != "" {
		cfg.Store.Notebook = *notebookFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("calcnote-mcp: %v", err)
	}

	// stdout carries the protocol
	logger := cfg.Logger(os.Stderr)

	store, closeStore, err := storage.Open(cfg, logger)
	if err != nil {
		log.Fatalf("calcnote-mcp: %v", err)
	}
	defer closeStore()

	ev := evaluator.New()

	mcpServer := server.NewMCPServer(
		"calcnote-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store, ev)
	mcpadapter.RegisterWriteTools(mcpServer, store, ev)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("calcnote-mcp: %v", err)
	}
}
