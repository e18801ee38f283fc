package tools

import (
	"context"
	"fmt"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── UpdateTool ──────────────────────────────────────────────────────────────

// UpdateTool handles the doc_update MCP tool. Unlike doc_notify_changed,
// it records a new version/state without running a consistency pass —
// use it for bookkeeping moves (review outcomes, baselining).
type UpdateTool struct {
	m *matrix.Matrix
	p Persister
}

// NewUpdateTool creates an UpdateTool with its dependencies.
func NewUpdateTool(m *matrix.Matrix, p Persister) *UpdateTool {
	return &UpdateTool{m: m, p: p}
}

// Definition returns the MCP tool definition for doc_update.
func (t *UpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("doc_update",
		mcp.WithDescription(
			"Record a new version (and optionally a lifecycle state change) for a tracked "+
				"document without triggering consistency propagation. "+
				"Use doc_notify_changed instead when dependents should be re-evaluated.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document identifier"),
		),
		mcp.WithString("version",
			mcp.Required(),
			mcp.Description("New semantic version; must strictly increase"),
		),
		mcp.WithString("state",
			mcp.Description("Optional new lifecycle state: review, approved, rejected, baselined, modified, deprecated, archived"),
		),
	)
}

// Handle processes the doc_update tool call.
func (t *UpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	version := req.GetString("version", "")
	if version == "" {
		return mcp.NewToolResultError("'version' is required"), nil
	}
	state := req.GetString("state", "")

	rec, err := t.m.Update(id, version, matrix.DocState(state))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update document: %v", err)), nil
	}
	if err := persist(t.p, t.m); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Document updated:\n\n%s", formatRecord(rec))), nil
}

// ─── ArchiveTool ─────────────────────────────────────────────────────────────

// ArchiveTool handles the doc_archive MCP tool.
type ArchiveTool struct {
	m *matrix.Matrix
	p Persister
}

// NewArchiveTool creates an ArchiveTool with its dependencies.
func NewArchiveTool(m *matrix.Matrix, p Persister) *ArchiveTool {
	return &ArchiveTool{m: m, p: p}
}

// Definition returns the MCP tool definition for doc_archive.
func (t *ArchiveTool) Definition() mcp.Tool {
	return mcp.NewTool("doc_archive",
		mcp.WithDescription(
			"Archive a superseded or deprecated document. Archived records stay queryable "+
				"for the audit trail but are excluded from consistency propagation.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document identifier"),
		),
	)
}

// Handle processes the doc_archive tool call.
func (t *ArchiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	rec, err := t.m.Archive(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to archive document: %v", err)), nil
	}
	if err := persist(t.p, t.m); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Document %q archived (version %s retained for audit)", rec.ID, rec.Version)), nil
}
