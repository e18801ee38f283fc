package tools

import (
	"context"
	"fmt"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── RelateTool ──────────────────────────────────────────────────────────────

// RelateTool handles the doc_relate MCP tool.
type RelateTool struct {
	m *matrix.Matrix
	p Persister
}

// NewRelateTool creates a RelateTool with its dependencies.
func NewRelateTool(m *matrix.Matrix, p Persister) *RelateTool {
	return &RelateTool{m: m, p: p}
}

// Definition returns the MCP tool definition for doc_relate.
func (t *RelateTool) Definition() mcp.Tool {
	return mcp.NewTool("doc_relate",
		mcp.WithDescription(
			"Create a directed relationship between two tracked documents, e.g. a design "+
				"document that depends on a requirements document. The target's current version "+
				"is recorded as the last-known version for staleness checks.",
		),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Source document identifier (the dependent)"),
		),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Target document identifier (the dependency)"),
		),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Relationship kind: depends-on, references, derived-from"),
		),
	)
}

// Handle processes the doc_relate tool call.
func (t *RelateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := req.GetString("source", "")
	if source == "" {
		return mcp.NewToolResultError("'source' is required"), nil
	}
	target := req.GetString("target", "")
	if target == "" {
		return mcp.NewToolResultError("'target' is required"), nil
	}
	kind := req.GetString("kind", "")
	if kind == "" {
		return mcp.NewToolResultError("'kind' is required"), nil
	}

	edge, err := t.m.AddEdge(source, target, matrix.RelationKind(kind))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create relationship: %v", err)), nil
	}
	if err := persist(t.p, t.m); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Relationship created: %s -> %s (%s)\nEdge ID: %d, known version of %s: %s",
		source, target, kind, edge.ID, target, edge.KnownVersion,
	)), nil
}

// ─── UnrelateTool ────────────────────────────────────────────────────────────

// UnrelateTool handles the doc_unrelate MCP tool.
type UnrelateTool struct {
	m *matrix.Matrix
	p Persister
}

// NewUnrelateTool creates an UnrelateTool with its dependencies.
func NewUnrelateTool(m *matrix.Matrix, p Persister) *UnrelateTool {
	return &UnrelateTool{m: m, p: p}
}

// Definition returns the MCP tool definition for doc_unrelate.
func (t *UnrelateTool) Definition() mcp.Tool {
	return mcp.NewTool("doc_unrelate",
		mcp.WithDescription(
			"Remove every relationship between two documents. Idempotent: removing a "+
				"relationship that does not exist is not an error.",
		),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Source document identifier"),
		),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Target document identifier"),
		),
	)
}

// Handle processes the doc_unrelate tool call.
func (t *UnrelateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := req.GetString("source", "")
	if source == "" {
		return mcp.NewToolResultError("'source' is required"), nil
	}
	target := req.GetString("target", "")
	if target == "" {
		return mcp.NewToolResultError("'target' is required"), nil
	}

	removed := t.m.RemoveEdge(source, target)
	if removed > 0 {
		if err := persist(t.p, t.m); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	if removed == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No relationship between %s and %s — nothing to remove", source, target)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed %d relationship(s): %s -> %s", removed, source, target)), nil
}
