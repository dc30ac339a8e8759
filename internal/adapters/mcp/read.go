// Package mcp exposes the notebook as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"calcnote/internal/application"
	"calcnote/internal/application/commands"
	"calcnote/internal/domain"
	"calcnote/internal/ports"
)

// RegisterReadTools adds all read-only notebook tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.Store, evaluator ports.Evaluator) {
	s.AddTool(readTool(), readHandler(store, evaluator))
	s.AddTool(referencesTool(), referencesHandler(store, evaluator))
	s.AddTool(evaluateTool(), evaluateHandler(evaluator))
}

// --- notebook_read ---

func readTool() mcp.Tool {
	return mcp.NewTool("notebook_read",
		mcp.WithDescription("Read the stored notebook with the current result of every line. Each evaluable line shows its reference name (e.g. _calc3), which other lines can use to read its value."),
	)
}

func readHandler(store ports.Store, evaluator ports.Evaluator) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowNotebookCommand(store, evaluator).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.Text == "" {
			return mcp.NewToolResultText("Notebook is empty."), nil
		}
		return mcp.NewToolResultText(formatLines(result.Lines)), nil
	}
}

// --- notebook_references ---

func referencesTool() mcp.Tool {
	return mcp.NewTool("notebook_references",
		mcp.WithDescription("List the lines of the notebook that can be referenced, with their reference names and labels."),
		mcp.WithString("query",
			mcp.Description("Optional fuzzy filter on the label or reference name"),
		),
	)
}

func referencesHandler(store ports.Store, evaluator ports.Evaluator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")

		refs, err := commands.NewListReferencesCommand(store, evaluator, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(refs, formatReference)
	}
}

// --- evaluate ---

func evaluateTool() mcp.Tool {
	return mcp.NewTool("evaluate",
		mcp.WithDescription("Evaluate notebook text without saving it. Lines may assign variables (name = expr), reference earlier lines by name or by _calcN, and use sin cos tan log exp sqrt abs ceil floor round max min pi e."),
		mcp.WithString("text",
			mcp.Description("Notebook text, one calculation per line"),
			mcp.Required(),
		),
	)
}

func evaluateHandler(evaluator ports.Evaluator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")

		result, err := commands.NewEvaluateCommand(evaluator, text).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatLines(result.Lines)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatLines(lines []application.LineView) string {
	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, "%3d  %s", l.Line+1, l.Text)
		if l.Result != "" {
			fmt.Fprintf(&sb, "  => %s", l.Result)
		}
		if l.Reference != "" {
			fmt.Fprintf(&sb, "  [%s]", l.Reference)
		}
		if l.Error != "" && l.Result == domain.ErrorMarker {
			fmt.Fprintf(&sb, "  (%s)", l.Error)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatReference(r commands.ReferenceMatch) string {
	return fmt.Sprintf("%s  line %d  %s", r.Reference, r.Line+1, r.Label)
}
