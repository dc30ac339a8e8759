package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"calcnote/internal/application/commands"
	"calcnote/internal/ports"
)

// RegisterWriteTools adds the notebook tools that change stored state.
func RegisterWriteTools(s *server.MCPServer, store ports.Store, evaluator ports.Evaluator) {
	s.AddTool(writeTool(), updateHandler(store, evaluator, commands.UpdateModeReplace))
	s.AddTool(appendTool(), updateHandler(store, evaluator, commands.UpdateModeAppend))
}

// --- notebook_write ---

func writeTool() mcp.Tool {
	return mcp.NewTool("notebook_write",
		mcp.WithDescription("Replace the whole notebook text and recalculate. Lines whose text is kept keep their _calcN reference names."),
		mcp.WithString("text",
			mcp.Description("New notebook text. An empty text clears the notebook."),
			mcp.Required(),
		),
	)
}

// --- notebook_append ---

func appendTool() mcp.Tool {
	return mcp.NewTool("notebook_append",
		mcp.WithDescription("Append lines to the end of the notebook and recalculate."),
		mcp.WithString("text",
			mcp.Description("Lines to append"),
			mcp.Required(),
		),
	)
}

func updateHandler(store ports.Store, evaluator ports.Evaluator, mode commands.UpdateMode) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")

		result, err := commands.NewUpdateNotebookCommand(store, evaluator, text, mode).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", result.Message, formatLines(result.Lines))), nil
	}
}
