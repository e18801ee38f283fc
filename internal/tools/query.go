package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── GetTool ─────────────────────────────────────────────────────────────────

// GetTool handles the doc_get MCP tool.
type GetTool struct {
	m *matrix.Matrix
}

// NewGetTool creates a GetTool with the given matrix.
func NewGetTool(m *matrix.Matrix) *GetTool {
	return &GetTool{m: m}
}

// Definition returns the MCP tool definition for doc_get.
func (t *GetTool) Definition() mcp.Tool {
	return mcp.NewTool("doc_get",
		mcp.WithDescription(
			"Look up a tracked document by identifier, including its consistency status. "+
				"Archived documents remain queryable.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document identifier"),
		),
	)
}

// Handle processes the doc_get tool call.
func (t *GetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	rec, err := t.m.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get document: %v", err)), nil
	}
	return mcp.NewToolResultText(formatRecord(rec)), nil
}

// ─── IncomingTool ────────────────────────────────────────────────────────────

// IncomingTool handles the doc_incoming MCP tool.
type IncomingTool struct {
	m *matrix.Matrix
}

// NewIncomingTool creates an IncomingTool with the given matrix.
func NewIncomingTool(m *matrix.Matrix) *IncomingTool {
	return &IncomingTool{m: m}
}

// Definition returns the MCP tool definition for doc_incoming.
func (t *IncomingTool) Definition() mcp.Tool {
	return mcp.NewTool("doc_incoming",
		mcp.WithDescription(
			"List the documents that depend on (or reference) the given document — all "+
				"incoming relationship edges. These are the documents a change would affect.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document identifier"),
		),
	)
}

// Handle processes the doc_incoming tool call.
func (t *IncomingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	if _, err := t.m.Get(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list incoming edges: %v", err)), nil
	}

	edges := t.m.IncomingEdges(id)
	if len(edges) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No documents depend on %s", id)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %d incoming edge(s) for %s\n\n", len(edges), id))
	for _, e := range edges {
		sb.WriteString(fmt.Sprintf("- #%d: %s -> %s (%s), last-known version %s\n",
			e.ID, e.Source, e.Target, e.Kind, e.KnownVersion))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
