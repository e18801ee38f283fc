package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Org-EthereaLogic/docmatrix/internal/matrix"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── NotifyChangedTool ───────────────────────────────────────────────────────

// NotifyChangedTool handles the doc_notify_changed MCP tool — the single
// write path into the evaluation pipeline. Propagation is synchronous:
// by the time the result returns, every affected status has been
// recomputed and persisted.
type NotifyChangedTool struct {
	m *matrix.Matrix
	p Persister
}

// NewNotifyChangedTool creates a NotifyChangedTool with its dependencies.
func NewNotifyChangedTool(m *matrix.Matrix, p Persister) *NotifyChangedTool {
	return &NotifyChangedTool{m: m, p: p}
}

// Definition returns the MCP tool definition for doc_notify_changed.
func (t *NotifyChangedTool) Definition() mcp.Tool {
	return mcp.NewTool("doc_notify_changed",
		mcp.WithDescription(
			"Report that a document's content changed. Records the new version, then runs a "+
				"consistency pass: dependents whose recorded version of this document is out of "+
				"date are marked stale (or conflicted, for mutual dependencies). Returns every "+
				"document whose consistency status changed.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Identifier of the changed document"),
		),
		mcp.WithString("version",
			mcp.Required(),
			mcp.Description("New semantic version; must strictly increase"),
		),
	)
}

// Handle processes the doc_notify_changed tool call.
func (t *NotifyChangedTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	version := req.GetString("version", "")
	if version == "" {
		return mcp.NewToolResultError("'version' is required"), nil
	}

	report, err := t.m.NotifyChanged(id, version)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to process change: %v", err)), nil
	}
	if err := persist(t.p, t.m); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Change recorded: %s -> v%s (pass %s, %d documents examined)\n\n",
		id, version, report.PassID, report.Visited))

	if len(report.Updated) == 0 {
		sb.WriteString("No consistency statuses changed.")
		return mcp.NewToolResultText(sb.String()), nil
	}

	sb.WriteString(fmt.Sprintf("## %d status change(s)\n\n", len(report.Updated)))
	for _, rec := range report.Updated {
		sb.WriteString(fmt.Sprintf("- **%s**: %s", rec.ID, rec.Consistency.State))
		if len(rec.Consistency.ContributingEdges) > 0 {
			sb.WriteString(fmt.Sprintf(" (via edges %s)", joinEdgeIDs(rec.Consistency.ContributingEdges)))
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
